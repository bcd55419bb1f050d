package handler

import (
	"context"
	"encoding/json"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer/dto"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "pizzapalace.customizer.v1.CustomizerService"

// CustomizerServiceServer carries JSON-shaped messages as google.protobuf.Struct
// so clients need no generated stubs.
type CustomizerServiceServer interface {
	StartSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChooseItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetTopping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveTopping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Confirm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Abandon(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var CustomizerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CustomizerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("StartSession", CustomizerServiceServer.StartSession),
		unaryMethod("GetSession", CustomizerServiceServer.GetSession),
		unaryMethod("ChooseItem", CustomizerServiceServer.ChooseItem),
		unaryMethod("SetTopping", CustomizerServiceServer.SetTopping),
		unaryMethod("RemoveTopping", CustomizerServiceServer.RemoveTopping),
		unaryMethod("Confirm", CustomizerServiceServer.Confirm),
		unaryMethod("Abandon", CustomizerServiceServer.Abandon),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pizzapalace/customizer/v1/customizer.proto",
}

func RegisterCustomizerServiceServer(s grpc.ServiceRegistrar, srv CustomizerServiceServer) {
	s.RegisterService(&CustomizerServiceDesc, srv)
}

type unaryFunc func(CustomizerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CustomizerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CustomizerServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var _ CustomizerServiceServer = (*CustomizerHandler)(nil)

type CustomizerHandler struct {
	uc     customizer.UseCase
	logger logger.ZapLogger
}

func NewCustomizerHandler(uc customizer.UseCase, log logger.ZapLogger) *CustomizerHandler {
	return &CustomizerHandler{
		uc:     uc,
		logger: log,
	}
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *CustomizerHandler) StartSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.StartSessionInput
	if err := decode(req, &input); err != nil {
		return nil, err
	}
	view, err := h.uc.StartSession(ctx, &input)
	if err != nil {
		return nil, h.toStatus("failed to start session", err)
	}
	return encode(view)
}

func (h *CustomizerHandler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	view, err := h.uc.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, h.toStatus("failed to get session", err)
	}
	return encode(view)
}

func (h *CustomizerHandler) ChooseItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.ChooseItemInput
	if err := decode(req, &input); err != nil {
		return nil, err
	}
	view, err := h.uc.ChooseItem(ctx, &input)
	if err != nil {
		return nil, h.toStatus("failed to choose item", err)
	}
	return encode(view)
}

func (h *CustomizerHandler) SetTopping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.SetToppingInput
	if err := decode(req, &input); err != nil {
		return nil, err
	}
	view, err := h.uc.SetTopping(ctx, &input)
	if err != nil {
		return nil, h.toStatus("failed to set topping", err)
	}
	return encode(view)
}

func (h *CustomizerHandler) RemoveTopping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.RemoveToppingInput
	if err := decode(req, &input); err != nil {
		return nil, err
	}
	view, err := h.uc.RemoveTopping(ctx, &input)
	if err != nil {
		return nil, h.toStatus("failed to remove topping", err)
	}
	return encode(view)
}

func (h *CustomizerHandler) Confirm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	line, err := h.uc.Confirm(ctx, in.SessionID)
	if err != nil {
		return nil, h.toStatus("failed to confirm session", err)
	}
	return encode(map[string]interface{}{"line": line})
}

func (h *CustomizerHandler) Abandon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if err := h.uc.Abandon(ctx, in.SessionID); err != nil {
		return nil, h.toStatus("failed to abandon session", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

func (h *CustomizerHandler) toStatus(msg string, err error) error {
	code := grpcCode(err)
	if code == codes.Internal {
		h.logger.Error(msg, zap.Error(err))
	}
	return status.Error(code, err.Error())
}

func decode(req *structpb.Struct, out interface{}) error {
	data, err := protojson.Marshal(req)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(data, out); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func encode(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
