package tooltip

const (
	// Recommended priorities for configuration layers. Higher numbers win.
	ScopePriorityDefaults = 100
	ScopePrioritySite     = 200
	ScopePriorityPage     = 300
	ScopePriorityElement  = 400
)

// SitePageElement assembles the canonical four-layer stack: stock defaults,
// then site, page and element settings.
func SitePageElement(site, page, element Settings) (*Stack, error) {
	return NewStack(
		NewLayer(NewScope("element", ScopePriorityElement, WithScopeLabel("Element attributes")), element),
		NewLayer(NewScope("page", ScopePriorityPage, WithScopeLabel("Page")), page),
		NewLayer(NewScope("site", ScopePrioritySite, WithScopeLabel("Site")), site),
		NewLayer(NewScope("defaults", ScopePriorityDefaults, WithScopeLabel("Defaults")), SettingsFromConfig(DefaultConfig())),
	)
}
