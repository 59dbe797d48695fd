// Package feed fetches and caches raw TLE text per tracked category.
//
// The remote feed and the on-disk cache are both opaque text sources to the
// rest of the pipeline; this package only decides where bytes come from.
package feed

// Kind separates satellite category feeds from debris category feeds.
type Kind string

const (
	KindSatellite Kind = "satellites"
	KindDebris    Kind = "debris"
)

// Category names one tracked feed. Name is the local identifier (and cache
// file name); Group is the upstream Celestrak GROUP parameter.
type Category struct {
	Name  string
	Group string
	Kind  Kind
}

// SatelliteCategories and DebrisCategories are immutable configuration: the
// declared order is the catalog processing order, so output stays stable
// across rebuilds.
var SatelliteCategories = []Category{
	{Name: "active", Group: "active", Kind: KindSatellite},
	{Name: "starlink", Group: "starlink", Kind: KindSatellite},
	{Name: "stations", Group: "stations", Kind: KindSatellite},
	{Name: "visual", Group: "visual", Kind: KindSatellite},
	{Name: "weather", Group: "weather", Kind: KindSatellite},
	{Name: "noaa", Group: "noaa", Kind: KindSatellite},
	{Name: "goes", Group: "goes", Kind: KindSatellite},
	{Name: "resource", Group: "resource", Kind: KindSatellite},
	{Name: "sarsat", Group: "sarsat", Kind: KindSatellite},
	{Name: "dmc", Group: "dmc", Kind: KindSatellite},
	{Name: "tdrss", Group: "tdrss", Kind: KindSatellite},
	{Name: "argos", Group: "argos", Kind: KindSatellite},
	{Name: "planet", Group: "planet", Kind: KindSatellite},
	{Name: "spire", Group: "spire", Kind: KindSatellite},
}

var DebrisCategories = []Category{
	{Name: "last-30-days", Group: "last-30-days", Kind: KindDebris},
	{Name: "debris", Group: "debris", Kind: KindDebris},
	{Name: "iridium-33-debris", Group: "iridium-33-debris", Kind: KindDebris},
	{Name: "cosmos-2251-debris", Group: "cosmos-2251-debris", Kind: KindDebris},
	{Name: "fengyun-1c-debris", Group: "fengyun-1c-debris", Kind: KindDebris},
}

// Categories returns every tracked category, satellites first, in declared
// order.
func Categories() []Category {
	all := make([]Category, 0, len(SatelliteCategories)+len(DebrisCategories))
	all = append(all, SatelliteCategories...)
	all = append(all, DebrisCategories...)
	return all
}
