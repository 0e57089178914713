package debugpanel

// PanelBuilderOption is a functional option for configuring a Panel.
type PanelBuilderOption func(*panel)

// WithTitle sets the heading shown on the panel page.
//
// Parameters:
//   - title: the page heading
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithTitle(title string) PanelBuilderOption {
	return func(p *panel) {
		p.title = title
	}
}
