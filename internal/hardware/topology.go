package hardware

import (
	"context"
	"fmt"

	"assetdb/internal/apperr"
	"assetdb/internal/store"
)

const unassigned = "unassigned"

// Уровни графа сверху вниз.
var levels = map[string]int{"site": 1, "room": 2, "rack": 3, "hardware": 4, "switch": 5}

type Node struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Type   string  `json:"type"`
	Status *string `json:"status,omitempty"`
	Data   any     `json:"data,omitempty"`
}

type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"` // hierarchy | network
}

type Topology struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type rackGroup struct {
	name  string
	items []*View
}

type roomGroup struct {
	name  string
	racks []*rackGroup
	index map[string]*rackGroup
}

type siteGroup struct {
	name  string
	rooms []*roomGroup
	index map[string]*roomGroup
}

// BuildTopology groups hardware by site, room and rack in order of first appearance
// and links every hardware node to the switches it is cabled to.
func BuildTopology(items []View) Topology {
	var sites []*siteGroup
	siteIdx := map[string]*siteGroup{}
	for i := range items {
		hw := &items[i]
		sName, rName, kName := label(hw.Location.SiteName), label(hw.Location.Room), label(hw.Location.Rack)

		sg, ok := siteIdx[sName]
		if !ok {
			sg = &siteGroup{name: sName, index: map[string]*roomGroup{}}
			siteIdx[sName] = sg
			sites = append(sites, sg)
		}
		rg, ok := sg.index[rName]
		if !ok {
			rg = &roomGroup{name: rName, index: map[string]*rackGroup{}}
			sg.index[rName] = rg
			sg.rooms = append(sg.rooms, rg)
		}
		kg, ok := rg.index[kName]
		if !ok {
			kg = &rackGroup{name: kName}
			rg.index[kName] = kg
			rg.racks = append(rg.racks, kg)
		}
		kg.items = append(kg.items, hw)
	}

	t := Topology{Nodes: []Node{}, Links: []Link{}}
	seenSwitch := map[string]bool{}
	for _, sg := range sites {
		siteID := "site-" + sg.name
		t.Nodes = append(t.Nodes, Node{ID: siteID, Label: sg.name, Type: "site"})
		for _, rg := range sg.rooms {
			roomID := fmt.Sprintf("room-%s-%s", sg.name, rg.name)
			t.Nodes = append(t.Nodes, Node{ID: roomID, Label: rg.name, Type: "room"})
			t.Links = append(t.Links, Link{Source: siteID, Target: roomID, Type: "hierarchy"})
			for _, kg := range rg.racks {
				rackID := fmt.Sprintf("rack-%s-%s-%s", sg.name, rg.name, kg.name)
				t.Nodes = append(t.Nodes, Node{ID: rackID, Label: kg.name, Type: "rack"})
				t.Links = append(t.Links, Link{Source: roomID, Target: rackID, Type: "hierarchy"})
				for _, hw := range kg.items {
					hwID := fmt.Sprintf("hw-%d", hw.ID)
					t.Nodes = append(t.Nodes, Node{ID: hwID, Label: hw.Hostname, Type: "hardware", Status: hw.Status.Name, Data: hw})
					t.Links = append(t.Links, Link{Source: rackID, Target: hwID, Type: "hierarchy"})
					for j := range hw.Switches {
						sw := hw.Switches[j]
						swID := fmt.Sprintf("sw-%d", sw.ID)
						if !seenSwitch[swID] {
							seenSwitch[swID] = true
							t.Nodes = append(t.Nodes, Node{ID: swID, Label: deref(sw.Name), Type: "switch", Data: sw})
						}
						t.Links = append(t.Links, Link{Source: hwID, Target: swID, Type: "network"})
					}
				}
			}
		}
	}
	return t
}

// Filter keeps nodes whose level lies within [from, to] and links between kept nodes.
// Empty bounds default to site and switch.
func (t Topology) Filter(from, to string) (Topology, error) {
	if from == "" {
		from = "site"
	}
	if to == "" {
		to = "switch"
	}
	lo, ok := levels[from]
	if !ok {
		return Topology{}, apperr.BadRequest("unknown topology level %q", from)
	}
	hi, ok := levels[to]
	if !ok {
		return Topology{}, apperr.BadRequest("unknown topology level %q", to)
	}

	out := Topology{Nodes: []Node{}, Links: []Link{}}
	keep := map[string]bool{}
	for _, n := range t.Nodes {
		if l := levels[n.Type]; l >= lo && l <= hi {
			out.Nodes = append(out.Nodes, n)
			keep[n.ID] = true
		}
	}
	for _, l := range t.Links {
		if keep[l.Source] && keep[l.Target] {
			out.Links = append(out.Links, l)
		}
	}
	return out, nil
}

func (s *Service) Topology(ctx context.Context, from, to string) (Topology, error) {
	items, err := s.repo.FindAllWithRelations(ctx, store.FindOptions{})
	if err != nil {
		return Topology{}, err
	}
	return BuildTopology(items).Filter(from, to)
}

func label(s *string) string {
	if s == nil || *s == "" {
		return unassigned
	}
	return *s
}
