package automap

import (
	"maps"
	"reflect"
	"slices"

	"fluentmap/analyze"
)

// TypeSource yields the candidate types of an automapping run.
type TypeSource interface {
	Types() []*analyze.TypeInfo
}

type typeList []*analyze.TypeInfo

func (l typeList) Types() []*analyze.TypeInfo {
	return append([]*analyze.TypeInfo(nil), l...)
}

// Types is a source over the given Go types, in the order given. The types
// share one Reflector, so a type reachable from several of them is
// described once.
func Types(types ...reflect.Type) TypeSource {
	r := analyze.NewReflector()

	out := make(typeList, 0, len(types))
	for _, t := range types {
		if info := r.TypeOf(t); info != nil {
			out = append(out, info)
		}
	}

	return out
}

type graphSource struct {
	graph *analyze.TypeGraph
}

// FromGraph is a source over the named struct types of a loaded type graph,
// ordered by package path and then by type name.
func FromGraph(g *analyze.TypeGraph) TypeSource {
	return graphSource{graph: g}
}

func (s graphSource) Types() []*analyze.TypeInfo {
	if s.graph == nil {
		return nil
	}

	var out []*analyze.TypeInfo

	for _, path := range slices.Sorted(maps.Keys(s.graph.Packages)) {
		for _, id := range s.graph.Packages[path].Types {
			t := s.graph.GetType(id)
			if t != nil && t.Kind == analyze.TypeKindStruct {
				out = append(out, t)
			}
		}
	}

	return out
}
