package segment

// NewBottomBar creates the bottom navigation bar: one option per
// destination, laid out across layout's bounds.
//
// Usage:
//
//	destinations := []string{"home", "courses", "calendar", "inbox", "profile"}
//	bar := segment.NewBottomBar(layout, &destinations, func(i int) error {
//	    return router.Go(destinations[i])
//	})
func NewBottomBar(layout RowLayout, destinations *[]string, onSelect SelectFunc, opts ...SelectorOption) *Selector {
	base := []SelectorOption{WithName("bottom-bar"), WithConfig(BottomBarConfig())}
	return New(RowMeasure(layout, destinations), onSelect, append(base, opts...)...)
}

// NewTabGroup creates an in-content tab group.
//
// Usage:
//
//	tabs := []string{"overview", "quizzes", "assignments"}
//	group := segment.NewTabGroup(layout, &tabs, func(i int) error {
//	    page.ShowTab(i)
//	    return nil
//	})
func NewTabGroup(layout RowLayout, tabs *[]string, onSelect SelectFunc, opts ...SelectorOption) *Selector {
	base := []SelectorOption{WithName("tab-group"), WithConfig(TabGroupConfig())}
	return New(RowMeasure(layout, tabs), onSelect, append(base, opts...)...)
}
