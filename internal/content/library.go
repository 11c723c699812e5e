package content

import (
	"sort"
	"strings"
)

// Library is an immutable snapshot of the loaded content tree.
type Library struct {
	legends []*Legend
	bySlug  map[string]*Legend
	volumes map[string]*Volume
	models  []*Model
}

func newLibrary() *Library {
	return &Library{
		bySlug:  make(map[string]*Legend),
		volumes: make(map[string]*Volume),
	}
}

func (lib *Library) addLegend(l *Legend) {
	lib.legends = append(lib.legends, l)
	lib.bySlug[l.Slug] = l
}

func (lib *Library) addVolume(v *Volume) {
	lib.volumes[v.Key()] = v
}

// linkVolumes fills previous/next links from each hub's volume ordering.
func (lib *Library) linkVolumes() {
	for _, l := range lib.legends {
		refs := l.Volumes
		for i, ref := range refs {
			v, ok := lib.volumes[volumeKey(l.Slug, ref.Slug)]
			if !ok {
				continue
			}
			if i > 0 {
				v.Prev = &VolumeLink{Slug: refs[i-1].Slug, Title: refs[i-1].Title}
			}
			if i < len(refs)-1 {
				v.Next = &VolumeLink{Slug: refs[i+1].Slug, Title: refs[i+1].Title}
			}
		}
	}
}

// Legends returns every legend that is not a cross-cutting analysis, by slug.
func (lib *Library) Legends() []*Legend {
	var out []*Legend
	for _, l := range lib.legends {
		if !l.IsCrossCutting() {
			out = append(out, l)
		}
	}
	return out
}

// CrossCutting returns the cross-archetype analyses.
func (lib *Library) CrossCutting() []*Legend {
	var out []*Legend
	for _, l := range lib.legends {
		if l.IsCrossCutting() {
			out = append(out, l)
		}
	}
	return out
}

// AllLegends returns every legend hub, including cross-cutting analyses.
func (lib *Library) AllLegends() []*Legend {
	out := make([]*Legend, len(lib.legends))
	copy(out, lib.legends)
	return out
}

// Legend returns the hub with the given slug.
func (lib *Library) Legend(slug string) (*Legend, error) {
	l, ok := lib.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

// Volume returns one volume of a legend.
func (lib *Library) Volume(legend, volume string) (*Volume, error) {
	v, ok := lib.volumes[volumeKey(legend, volume)]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Volumes returns every volume ordered by legend slug then volume slug.
func (lib *Library) Volumes() []*Volume {
	out := make([]*Volume, 0, len(lib.volumes))
	for _, v := range lib.volumes {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out
}

// VolumesOf returns a legend's volumes that exist on disk, in hub order
// followed by any volumes the hub does not list.
func (lib *Library) VolumesOf(slug string) []*Volume {
	var out []*Volume
	listed := make(map[string]bool)
	if l, ok := lib.bySlug[slug]; ok {
		for _, ref := range l.Volumes {
			listed[ref.Slug] = true
			if v, ok := lib.volumes[volumeKey(slug, ref.Slug)]; ok {
				out = append(out, v)
			}
		}
	}
	for _, v := range lib.Volumes() {
		if v.LegendSlug == slug && !listed[v.Slug] {
			out = append(out, v)
		}
	}
	return out
}

// Models returns the mental-models library entries.
func (lib *Library) Models() []*Model {
	out := make([]*Model, len(lib.models))
	copy(out, lib.models)
	return out
}

// Model returns one library entry.
func (lib *Library) Model(slug string) (*Model, error) {
	for _, m := range lib.models {
		if strings.EqualFold(m.Slug, slug) {
			return m, nil
		}
	}
	return nil, ErrNotFound
}
