package studio

// QuickAction names a predefined prompt modifier offered in the result view.
type QuickAction struct {
	ID       string
	Modifier string
}

var quickActions = []QuickAction{
	{ID: "more_luxurious", Modifier: "Enhance luxury, high-end look, expensive feeling."},
	{ID: "more_minimalist", Modifier: "Minimalist composition, clean empty space, focused light."},
	{ID: "darker_background", Modifier: "Dark atmospheric background, moody lighting, obsidian tones."},
	{ID: "intense_sparkle", Modifier: "Enhance diamond sparkles, sharp reflections on gold, glistening light."},
	{ID: "marble_setting", Modifier: "Premium Carrara marble surface background."},
	{ID: "silk_setting", Modifier: "Soft flowing black silk fabric background."},
}

// QuickActions lists the predefined modifiers.
func QuickActions() []QuickAction {
	out := make([]QuickAction, len(quickActions))
	copy(out, quickActions)
	return out
}

// LookupQuickAction resolves a catalog id to its modifier text.
func LookupQuickAction(id string) (string, bool) {
	for _, action := range quickActions {
		if action.ID == id {
			return action.Modifier, true
		}
	}
	return "", false
}
