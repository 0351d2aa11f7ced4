package cart

// ActionType names a cart transition.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionRemove ActionType = "remove"
	ActionUpdate ActionType = "update_quantity"
	ActionClear  ActionType = "clear"
	ActionLoad   ActionType = "load"
)

// Action is the input of Reduce. Only the fields relevant to Type are read.
type Action struct {
	Type     ActionType
	Item     Item
	Key      Key
	Quantity int
	Items    []Item
}

// Reduce returns the cart that results from applying action to items.
// The input slice is never modified.
func Reduce(items []Item, action Action) []Item {
	switch action.Type {
	case ActionAdd:
		key := action.Item.Key()
		out := make([]Item, 0, len(items)+1)
		found := false
		for _, item := range items {
			if item.Key() == key {
				item.Quantity++
				found = true
			}
			out = append(out, item)
		}
		if !found {
			added := action.Item
			added.Quantity = 1
			out = append(out, added)
		}
		return out

	case ActionRemove:
		out := make([]Item, 0, len(items))
		for _, item := range items {
			if item.Key() != action.Key {
				out = append(out, item)
			}
		}
		return out

	case ActionUpdate:
		if action.Quantity <= 0 {
			return Reduce(items, Action{Type: ActionRemove, Key: action.Key})
		}
		out := make([]Item, len(items))
		for i, item := range items {
			if item.Key() == action.Key {
				item.Quantity = action.Quantity
			}
			out[i] = item
		}
		return out

	case ActionClear:
		return []Item{}

	case ActionLoad:
		if action.Items == nil {
			return []Item{}
		}
		out := make([]Item, len(action.Items))
		copy(out, action.Items)
		return out

	default:
		return items
	}
}
