// Package visibility decides which panels and panel items of a customizer
// template are shown for the current selections.
package visibility

import "github.com/RandalBristow/pizza-palace-sub000/internal/model"

type ruleKey struct {
	panelID string
	childID string // empty for panel-level rules
}

type edge struct {
	parentItemID string
	isVisible    bool
}

// RuleIndex is a lookup table of visibility rules keyed by (panel, child item).
type RuleIndex struct {
	edges map[ruleKey][]edge
}

func NewRuleIndex(rules []model.VisibilityRule) *RuleIndex {
	idx := &RuleIndex{edges: make(map[ruleKey][]edge, len(rules))}
	for _, r := range rules {
		key := ruleKey{panelID: r.PanelID}
		if r.ChildItemID != nil {
			key.childID = *r.ChildItemID
		}
		idx.edges[key] = append(idx.edges[key], edge{parentItemID: r.ParentItemID, isVisible: r.IsVisible})
	}
	return idx
}

// PanelGoverned reports whether any panel-level rule exists for the panel.
func (idx *RuleIndex) PanelGoverned(panelID string) bool {
	return idx.governed(ruleKey{panelID: panelID})
}

// ItemGoverned reports whether any rule references the item.
func (idx *RuleIndex) ItemGoverned(panelID, itemID string) bool {
	return idx.governed(ruleKey{panelID: panelID, childID: itemID})
}

// PanelAllows reports whether some panel-level rule shows the panel for parentItemID.
func (idx *RuleIndex) PanelAllows(panelID, parentItemID string) bool {
	return idx.allows(ruleKey{panelID: panelID}, parentItemID)
}

// ItemAllows reports whether some rule shows the item for parentItemID.
func (idx *RuleIndex) ItemAllows(panelID, itemID, parentItemID string) bool {
	return idx.allows(ruleKey{panelID: panelID, childID: itemID}, parentItemID)
}

func (idx *RuleIndex) governed(key ruleKey) bool {
	if idx == nil {
		return false
	}
	return len(idx.edges[key]) > 0
}

// allows is an OR over positive edges: a hidden edge for the same parent
// never overrides a visible one.
func (idx *RuleIndex) allows(key ruleKey, parentItemID string) bool {
	if idx == nil {
		return false
	}
	for _, e := range idx.edges[key] {
		if e.parentItemID == parentItemID && e.isVisible {
			return true
		}
	}
	return false
}
