package manifest

import "specrun/internal/domain"

// DefaultName is the name of the built-in suite
const DefaultName = "discovery-ui2"

// DefaultBasePath is the base path of the built-in suite
const DefaultBasePath = "../../test/mocha/js"

// Suite of specs that deal with UI widgets exclusively, grouped #1..#N.
var defaultSpecs = []domain.Spec{
	{Path: "/widgets/list_of_things_expanding.spec.js", Group: "#1"},
	{Path: "/widgets/list_of_things_widget.spec.js", Group: "#1"},
	{Path: "/widgets/lot_derivates.spec.js", Group: "#1"},
	{Path: "/widgets/multi_callback_widget.spec.js", Group: "#1"},
	{Path: "/widgets/reads_graph_facet_widget.spec.js", Group: "#1"},
	{Path: "/widgets/resources_widget.spec.js", Group: "#1"},

	{Path: "/widgets/results_render_widget.spec.js", Group: "#2"},
	{Path: "/widgets/search_bar_widget.spec.js", Group: "#2"},
	{Path: "/widgets/sort_widget.spec.js", Group: "#2"},

	{Path: "/widgets/similar_widget.spec.js", Group: "#3", Disabled: true, Reason: "TBD 24/09/14"},
	{Path: "/widgets/tabs_widget.spec.js", Group: "#3"},
	{Path: "/widgets/wordcloud_widget.spec.js", Group: "#3"},
	{Path: "/widgets/year_graph_facet_widget.spec.js", Group: "#3"},

	{Path: "/widgets/network_widget.spec.js", Group: "#4"},
}

// Default returns the built-in UI widget suite
func Default() *Manifest {
	return New(DefaultName, DefaultBasePath, defaultSpecs)
}
