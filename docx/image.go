package docx

import (
	"bytes"
	"image"
	"os"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/typeset/model"
)

// emuPerPixel converts 96dpi pixels to English Metric Units.
const emuPerPixel = 9525

// maxImageWidth caps embedded images at the text width of a letter page
// with one-inch margins, in EMUs. Wider images scale down proportionally.
const maxImageWidth = 5943600

// imageContentTypes maps registered image formats to their MIME types. The
// format name doubles as the media file extension.
var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// embedImage probes the image source and, for a readable local file in a
// supported format, registers a media part and returns the drawing run.
// Remote and unreadable sources report false, and the caller falls back to a
// text placeholder.
func (w *writer) embedImage(img *model.Image) (*runXML, bool) {
	target := img.Target
	if target == "" || strings.Contains(target, "://") {
		return nil, false
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	if _, ok := imageContentTypes[format]; !ok {
		return nil, false
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, false
	}

	cx := int64(cfg.Width) * emuPerPixel
	cy := int64(cfg.Height) * emuPerPixel
	if cx > maxImageWidth {
		cy = cy * maxImageWidth / cx
		cx = maxImageWidth
	}

	w.images++
	name := "image" + strconv.Itoa(w.images) + "." + format
	w.media = append(w.media, mediaFile{name: name, ext: format, data: data})
	relID := w.addRelationship(relTypeImage, "media/"+name, "")

	drawing := &drawingXML{Inline: inlineDrawingXML{
		Extent: extentXML{CX: cx, CY: cy},
		DocPr:  docPrXML{ID: w.images, Name: "Picture " + strconv.Itoa(w.images), Descr: model.Text(img.Inlines)},
		Graphic: graphicXML{Data: graphicDataXML{
			URI: nsPic,
			Pic: picXML{
				NvPicPr:  nvPicPrXML{CNvPr: cNvPrXML{ID: w.images, Name: name}},
				BlipFill: blipFillXML{Blip: blipXML{Embed: relID}},
				SpPr: spPrXML{
					Xfrm:     xfrmXML{Ext: extXML{CX: cx, CY: cy}},
					PrstGeom: prstGeomXML{Prst: "rect"},
				},
			},
		}},
	}}
	return &runXML{Drawing: drawing}, true
}
