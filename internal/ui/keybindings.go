package ui

import "sort"

// Action is what a key does in the table view.
type Action string

const (
	ActionNone        Action = ""
	ActionDown        Action = "down"
	ActionUp          Action = "up"
	ActionTop         Action = "top"
	ActionBottom      Action = "bottom"
	ActionPrevColumn  Action = "prev_column"
	ActionNextColumn  Action = "next_column"
	ActionScrollLeft  Action = "scroll_left"
	ActionScrollRight Action = "scroll_right"
	ActionSort        Action = "sort"
	ActionMultiSort   Action = "multi_sort"
	ActionSearch      Action = "search"
	ActionFilter      Action = "filter"
	ActionFilterRow   Action = "filter_row"
	ActionClear       Action = "clear"
	ActionPinLeft     Action = "pin_left"
	ActionPinRight    Action = "pin_right"
	ActionUnpin       Action = "unpin"
	ActionNarrow      Action = "narrow"
	ActionWiden       Action = "widen"
	ActionNarrowMore  Action = "narrow_more"
	ActionWidenMore   Action = "widen_more"
	ActionDrag        Action = "drag"
	ActionToggleCol   Action = "toggle_column"
	ActionShowAll     Action = "show_all"
	ActionHideAll     Action = "hide_all"
	ActionResetCols   Action = "reset_columns"
	ActionColumnMenu  Action = "column_menu"
	ActionNextPage    Action = "next_page"
	ActionPrevPage    Action = "prev_page"
	ActionPageSizeUp  Action = "page_size_up"
	ActionPageSizeDn  Action = "page_size_down"
	ActionReload      Action = "reload"
	ActionHelp        Action = "help"
	ActionQuit        Action = "quit"
)

// DefaultKeyBindings maps key strings (as reported by tea.KeyPressMsg.String)
// to actions.
var DefaultKeyBindings = map[string]Action{
	"j":                ActionDown,
	"down":             ActionDown,
	"k":                ActionUp,
	"up":               ActionUp,
	"g":                ActionTop,
	"home":             ActionTop,
	"G":                ActionBottom,
	"end":              ActionBottom,
	"h":                ActionPrevColumn,
	"left":             ActionPrevColumn,
	"shift+tab":        ActionPrevColumn,
	"l":                ActionNextColumn,
	"right":            ActionNextColumn,
	"tab":              ActionNextColumn,
	"<":                ActionScrollLeft,
	">":                ActionScrollRight,
	"s":                ActionSort,
	"S":                ActionMultiSort,
	"/":                ActionSearch,
	"f":                ActionFilter,
	"F":                ActionFilterRow,
	"esc":              ActionClear,
	"[":                ActionPinLeft,
	"]":                ActionPinRight,
	"=":                ActionUnpin,
	"ctrl+left":        ActionNarrow,
	"ctrl+right":       ActionWiden,
	"{":                ActionNarrow,
	"}":                ActionWiden,
	"ctrl+shift+left":  ActionNarrowMore,
	"ctrl+shift+right": ActionWidenMore,
	"m":                ActionDrag,
	"v":                ActionToggleCol,
	"V":                ActionShowAll,
	"X":                ActionHideAll,
	"R":                ActionResetCols,
	"c":                ActionColumnMenu,
	"n":                ActionNextPage,
	"pgdown":           ActionNextPage,
	"p":                ActionPrevPage,
	"pgup":             ActionPrevPage,
	"+":                ActionPageSizeUp,
	"-":                ActionPageSizeDn,
	"r":                ActionReload,
	"?":                ActionHelp,
	"q":                ActionQuit,
	"ctrl+c":           ActionQuit,
}

// helpOrder groups actions for the help overlay.
var helpOrder = []struct {
	action Action
	desc   string
}{
	{ActionDown, "next row"},
	{ActionUp, "previous row"},
	{ActionTop, "first row"},
	{ActionBottom, "last row"},
	{ActionNextColumn, "next column"},
	{ActionPrevColumn, "previous column"},
	{ActionScrollLeft, "scroll left"},
	{ActionScrollRight, "scroll right"},
	{ActionSort, "sort column"},
	{ActionMultiSort, "add to sort"},
	{ActionSearch, "search all columns"},
	{ActionFilter, "filter column"},
	{ActionFilterRow, "show filter row"},
	{ActionClear, "clear search and filters"},
	{ActionPinLeft, "pin left"},
	{ActionPinRight, "pin right"},
	{ActionUnpin, "unpin"},
	{ActionNarrow, "narrower"},
	{ActionWiden, "wider"},
	{ActionNarrowMore, "much narrower"},
	{ActionWidenMore, "much wider"},
	{ActionDrag, "move column"},
	{ActionToggleCol, "hide column"},
	{ActionShowAll, "show all columns"},
	{ActionHideAll, "hide all columns"},
	{ActionResetCols, "reset columns"},
	{ActionColumnMenu, "column menu"},
	{ActionNextPage, "next page"},
	{ActionPrevPage, "previous page"},
	{ActionPageSizeUp, "larger pages"},
	{ActionPageSizeDn, "smaller pages"},
	{ActionReload, "reload data"},
	{ActionHelp, "toggle help"},
	{ActionQuit, "quit"},
}

// KeysFor returns the keys bound to an action, sorted.
func KeysFor(bindings map[string]Action, a Action) []string {
	var out []string
	for k, v := range bindings {
		if v == a {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
