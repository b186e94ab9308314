// SPDX-License-Identifier: GPL-2.0-or-later

package cli

import (
	"fmt"
	goimage "image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"multiasset/filesystem"
	"multiasset/image"
	"multiasset/pack"
	"multiasset/palette"
	"multiasset/probe"
	"multiasset/spr"
)

// load reads and decodes name. With as set only that format is tried.
func load(name, as string) (probe.Asset, error) {
	data, err := filesystem.ReadFile(name)
	if err != nil {
		return probe.Asset{}, err
	}
	slog.Debug("read file", "name", name, "size", len(data))
	if as == "" {
		a, err := probe.Decode(data)
		return a, errors.Wrap(err, name)
	}
	k, ok := probe.ParseKind(as)
	if !ok {
		return probe.Asset{}, errors.Errorf("unknown format %q", as)
	}
	f, ok := probe.ByKind(k)
	if !ok {
		return probe.Asset{}, errors.Errorf("no decoder for %s", k)
	}
	a, err := f.Decode(data)
	return a, errors.Wrap(err, name)
}

func (a *app) infoCommand() *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "info <file>...",
		Short: "Print a summary of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				asset, err := load(name, as)
				if err != nil {
					return err
				}
				if err := writeSummary(cmd.OutOrStdout(), a.cfg.Output, summarize(name, asset)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "decode as this format (bsp, wad, sprite) instead of probing")
	return cmd
}

type exportImage struct {
	name    string
	pix     []byte
	width   int
	height  int
	palette palette.Palette
	alpha   bool
}

// render keeps opaque images paletted. Transparent ones are expanded so the
// colors behind the holes can be fixed up.
func (ei exportImage) render() (goimage.Image, error) {
	if !ei.alpha {
		return image.ToPaletted(ei.pix, ei.width, ei.height, ei.palette)
	}
	img, err := image.FromIndexed(ei.pix, ei.width, ei.height, ei.palette, true)
	if err != nil {
		return nil, err
	}
	image.FixAlphaEdges(img)
	return img, nil
}

// fileName turns a texture name into a portable file name part.
var fileName = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "#", "?", "_")

func exportImages(asset probe.Asset) []exportImage {
	var images []exportImage
	switch asset.Kind {
	case probe.KindBsp:
		for _, t := range asset.Bsp.Textures {
			if !t.HasBitmap() {
				continue
			}
			images = append(images, exportImage{
				t.Name, t.Mips[0], int(t.Width), int(t.Height), t.Palette, strings.HasPrefix(t.Name, "{"),
			})
		}
	case probe.KindWad:
		for _, e := range asset.Wad.Entries {
			images = append(images, exportImage{
				e.Name, e.Pixels, int(e.Width), int(e.Height), e.Palette, strings.HasPrefix(e.Name, "{"),
			})
		}
	case probe.KindSprite:
		s := asset.Sprite
		for i, fr := range s.Frames {
			images = append(images, exportImage{
				fmt.Sprintf("%03d", i), fr.Pixels, int(fr.Width), int(fr.Height), s.Palette, s.TextureFormat == spr.AlphaTest,
			})
		}
	}
	return images
}

func (a *app) exportCommand() *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "export <file>...",
		Short: "Write embedded textures and sprite frames as png",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.ExportDir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			for _, name := range args {
				asset, err := load(name, as)
				if err != nil {
					return err
				}
				prefix := filesystem.Base(name)
				images := exportImages(asset)
				for _, ei := range images {
					img, err := ei.render()
					if err != nil {
						return errors.Wrap(err, ei.name)
					}
					out := filepath.Join(dir, fileName.Replace(prefix+"_"+ei.name)+".png")
					if err := image.WritePNG(out, img); err != nil {
						return err
					}
				}
				slog.Info("exported", "file", name, "images", len(images), "dir", dir)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d images\n", name, len(images))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "decode as this format (bsp, wad, sprite) instead of probing")
	return cmd
}

func (a *app) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported formats in probing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tPRIORITY\tFILES\tNAME")
			for _, f := range probe.Formats() {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", f.Kind, f.Priority, strings.Join(f.FileTypes, " "), f.Name)
			}
			return w.Flush()
		},
	}
}

func (a *app) pakCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pak <file.pak>",
		Short: "List the entries of a pak archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pack.NewPackReader(args[0])
			if err != nil {
				return err
			}
			defer p.Close()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tKIND")
			for _, name := range p.Names() {
				size, _ := p.Size(name)
				kind := ""
				for _, f := range probe.Formats() {
					if f.Matches(name) {
						kind = f.Kind.String()
						break
					}
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, size, kind)
			}
			return w.Flush()
		},
	}
}
