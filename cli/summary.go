// SPDX-License-Identifier: GPL-2.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"multiasset/bsp"
	"multiasset/probe"
	"multiasset/spr"
	"multiasset/wad"
)

type Summary struct {
	File   string         `json:"file" yaml:"file"`
	Kind   string         `json:"kind" yaml:"kind"`
	Bsp    *BspSummary    `json:"bsp,omitempty" yaml:"bsp,omitempty"`
	Wad    *WadSummary    `json:"wad,omitempty" yaml:"wad,omitempty"`
	Sprite *SpriteSummary `json:"sprite,omitempty" yaml:"sprite,omitempty"`
}

type TextureSummary struct {
	Name     string `json:"name" yaml:"name"`
	Width    uint32 `json:"width" yaml:"width"`
	Height   uint32 `json:"height" yaml:"height"`
	Embedded bool   `json:"embedded" yaml:"embedded"`
}

type BspSummary struct {
	Entities  int              `json:"entities" yaml:"entities"`
	Textures  []TextureSummary `json:"textures" yaml:"textures"`
	TexInfos  int              `json:"texinfos" yaml:"texinfos"`
	Faces     int              `json:"faces" yaml:"faces"`
	Vertexes  int              `json:"vertexes" yaml:"vertexes"`
	Models    int              `json:"models" yaml:"models"`
	WorldMins [3]float32       `json:"world_mins" yaml:"world_mins"`
	WorldMaxs [3]float32       `json:"world_maxs" yaml:"world_maxs"`
}

type SkipSummary struct {
	Name  string `json:"name" yaml:"name"`
	Error string `json:"error" yaml:"error"`
}

type WadSummary struct {
	Entries []TextureSummary `json:"entries" yaml:"entries"`
	Skipped []SkipSummary    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type FrameSummary struct {
	Origin [2]int32 `json:"origin" yaml:"origin,flow"`
	Width  int32    `json:"width" yaml:"width"`
	Height int32    `json:"height" yaml:"height"`
}

type SpriteSummary struct {
	Type            string         `json:"type" yaml:"type"`
	TextureFormat   string         `json:"texture_format" yaml:"texture_format"`
	SyncType        string         `json:"sync_type" yaml:"sync_type"`
	BoundingRadius  float32        `json:"bounding_radius" yaml:"bounding_radius"`
	Width           int32          `json:"width" yaml:"width"`
	Height          int32          `json:"height" yaml:"height"`
	BeamLength      float32        `json:"beam_length" yaml:"beam_length"`
	Frames          []FrameSummary `json:"frames" yaml:"frames"`
	DiscardedGroups int            `json:"discarded_groups" yaml:"discarded_groups"`
}

func summarize(name string, a probe.Asset) Summary {
	s := Summary{File: name, Kind: a.Kind.String()}
	switch a.Kind {
	case probe.KindBsp:
		s.Bsp = summarizeBsp(a.Bsp)
	case probe.KindWad:
		s.Wad = summarizeWad(a.Wad)
	case probe.KindSprite:
		s.Sprite = summarizeSprite(a.Sprite)
	}
	return s
}

func summarizeBsp(f *bsp.File) *BspSummary {
	s := &BspSummary{
		Entities: len(f.ParsedEntities()),
		Textures: make([]TextureSummary, 0, len(f.Textures)),
		TexInfos: len(f.TexInfos),
		Faces:    len(f.Faces),
		Models:   len(f.Models),
	}
	for i := range f.Textures {
		t := &f.Textures[i]
		s.Textures = append(s.Textures, TextureSummary{t.Name, t.Width, t.Height, t.HasBitmap()})
	}
	for i := range f.Faces {
		s.Vertexes += len(f.Faces[i].Vertexes)
	}
	if world, ok := f.WorldModel(); ok {
		s.WorldMins = world.Mins.Array()
		s.WorldMaxs = world.Maxs.Array()
	}
	return s
}

func summarizeWad(f *wad.File) *WadSummary {
	s := &WadSummary{Entries: make([]TextureSummary, 0, len(f.Entries))}
	for _, e := range f.Entries {
		s.Entries = append(s.Entries, TextureSummary{e.Name, e.Width, e.Height, true})
	}
	for _, sk := range f.Skipped {
		s.Skipped = append(s.Skipped, SkipSummary{sk.Name, sk.Err.Error()})
	}
	return s
}

func summarizeSprite(f *spr.File) *SpriteSummary {
	s := &SpriteSummary{
		Type:            f.Type.String(),
		TextureFormat:   f.TextureFormat.String(),
		SyncType:        f.SyncType.String(),
		BoundingRadius:  f.BoundingRadius,
		Width:           f.Width,
		Height:          f.Height,
		BeamLength:      f.BeamLength,
		Frames:          make([]FrameSummary, 0, len(f.Frames)),
		DiscardedGroups: f.DiscardedGroups,
	}
	for _, fr := range f.Frames {
		s.Frames = append(s.Frames, FrameSummary{fr.Origin, fr.Width, fr.Height})
	}
	return s
}

func writeSummary(w io.Writer, format string, s Summary) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case "text":
		return writeText(w, s)
	}
	return errors.Errorf("unsupported output %q", format)
}

func writeText(w io.Writer, s Summary) error {
	p := &printer{w: w}
	p.printf("%s: %s\n", s.File, s.Kind)
	switch {
	case s.Bsp != nil:
		b := s.Bsp
		p.printf("entities: %d\ntexinfos: %d\nfaces: %d (%d vertexes)\nmodels: %d\n",
			b.Entities, b.TexInfos, b.Faces, b.Vertexes, b.Models)
		p.printf("world: %v %v\n", b.WorldMins, b.WorldMaxs)
		p.textures("textures", b.Textures)
	case s.Wad != nil:
		p.textures("entries", s.Wad.Entries)
		for _, sk := range s.Wad.Skipped {
			p.printf("  skipped %s: %s\n", sk.Name, sk.Error)
		}
	case s.Sprite != nil:
		sp := s.Sprite
		p.printf("type: %s\ntexture format: %s\nsync: %s\n", sp.Type, sp.TextureFormat, sp.SyncType)
		p.printf("size: %dx%d radius %g beam %g\n", sp.Width, sp.Height, sp.BoundingRadius, sp.BeamLength)
		p.printf("frames: %d (%d groups discarded)\n", len(sp.Frames), sp.DiscardedGroups)
		for i, fr := range sp.Frames {
			p.printf("  %3d %dx%d at %v\n", i, fr.Width, fr.Height, fr.Origin)
		}
	}
	return p.err
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) textures(title string, ts []TextureSummary) {
	p.printf("%s: %d\n", title, len(ts))
	for _, t := range ts {
		mark := ""
		if !t.Embedded {
			mark = " (external)"
		}
		p.printf("  %-16s %4dx%-4d%s\n", t.Name, t.Width, t.Height, mark)
	}
}
