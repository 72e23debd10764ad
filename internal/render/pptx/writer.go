// Package pptx writes laid out decks as PowerPoint 2007+ packages.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

// 1 inch = 914400 EMU, 1 point = 12700 EMU
const (
	emuPerInch  = 914400
	emuPerPoint = 12700
)

type mediaPart struct {
	name string
	img  *images.Image
}

// Writer serializes one deck. Images missing from the lookup are left out.
type Writer struct {
	deck   *layout.Deck
	images images.Lookup
	now    func() time.Time

	media    []mediaPart
	mediaIdx map[string]int
}

// NewWriter creates a writer for deck
func NewWriter(deck *layout.Deck, imgs images.Lookup) *Writer {
	if imgs == nil {
		imgs = images.Map{}
	}
	w := &Writer{
		deck:     deck,
		images:   imgs,
		now:      time.Now,
		mediaIdx: make(map[string]int),
	}
	for _, src := range deck.Images() {
		img, ok := imgs.Get(src)
		if !ok {
			continue
		}
		w.mediaIdx[src] = len(w.media)
		w.media = append(w.media, mediaPart{
			name: fmt.Sprintf("image%d.%s", len(w.media)+1, img.Ext),
			img:  img,
		})
	}
	return w
}

// Render returns the deck as PPTX bytes
func Render(deck *layout.Deck, imgs images.Lookup) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewWriter(deck, imgs).Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the package to out
func (w *Writer) Write(out io.Writer) error {
	zw := zip.NewWriter(out)

	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		func(zw *zip.Writer) error { return writeRawXMLToZip(zw, "ppt/presProps.xml", presPropsXML) },
		func(zw *zip.Writer) error { return writeRawXMLToZip(zw, "ppt/viewProps.xml", viewPropsXML) },
		func(zw *zip.Writer) error { return writeRawXMLToZip(zw, "ppt/tableStyles.xml", tableStylesXML) },
		w.writeMaster,
		w.writeLayout,
		func(zw *zip.Writer) error {
			return writeRawXMLToZip(zw, "ppt/theme/theme1.xml", themeXML(w.deck.Theme.FontFace))
		},
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			return err
		}
	}

	for i := range w.deck.Slides {
		if err := w.writeSlide(zw, i); err != nil {
			return err
		}
	}

	for _, m := range w.media {
		fw, err := zw.Create("ppt/media/" + m.name)
		if err != nil {
			return fmt.Errorf("failed to create media %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.img.Data); err != nil {
			return fmt.Errorf("failed to write media %s: %w", m.name, err)
		}
	}

	return zw.Close()
}

func (w *Writer) writeContentTypes(zw *zip.Writer) error {
	ct := xmlContentTypes{
		Xmlns: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xmlOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/presProps.xml", ContentType: ctPresProps},
			{PartName: "/ppt/viewProps.xml", ContentType: ctViewProps},
			{PartName: "/ppt/tableStyles.xml", ContentType: ctTableStyles},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtProps},
		},
	}

	seen := make(map[string]bool)
	for _, m := range w.media {
		if seen[m.img.Ext] {
			continue
		}
		seen[m.img.Ext] = true
		ct.Defaults = append(ct.Defaults, xmlDefault{Extension: m.img.Ext, ContentType: m.img.MIME})
	}

	for i := range w.deck.Slides {
		ct.Overrides = append(ct.Overrides, xmlOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i+1),
			ContentType: ctSlide,
		})
	}

	return writeXMLToZip(zw, "[Content_Types].xml", ct)
}

func (w *Writer) writeRootRels(zw *zip.Writer) error {
	rels := xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeOfficeDoc, Target: "ppt/presentation.xml"},
			{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeExtProps, Target: "docProps/app.xml"},
		},
	}
	return writeXMLToZip(zw, "_rels/.rels", rels)
}

func (w *Writer) writeAppProperties(zw *zip.Writer) error {
	content := fmt.Sprintf(xmlDecl+`<Properties xmlns="%s" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`+
		`<Application>AIPPT</Application><PresentationFormat>On-screen Show (16:9)</PresentationFormat><Slides>%d</Slides></Properties>`,
		nsExtProperties, len(w.deck.Slides))
	return writeRawXMLToZip(zw, "docProps/app.xml", content)
}

func (w *Writer) writeCoreProperties(zw *zip.Writer) error {
	now := w.now().UTC().Format("2006-01-02T15:04:05Z")
	content := fmt.Sprintf(xmlDecl+`<cp:coreProperties xmlns:cp="%s" xmlns:dc="http://purl.org/dc/elements/1.1/" `+
		`xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
		`<dc:title>%s</dc:title><dc:creator>%s</dc:creator><cp:lastModifiedBy>%s</cp:lastModifiedBy><cp:revision>1</cp:revision>`+
		`<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created><dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`+
		`</cp:coreProperties>`,
		nsCoreProperties,
		xmlEscape(w.deck.Theme.Title),
		xmlEscape(w.deck.Theme.Author),
		xmlEscape(w.deck.Theme.Author),
		now, now)
	return writeRawXMLToZip(zw, "docProps/core.xml", content)
}

// presentation.xml.rels: rId1 master, rId2..n+1 slides, then props and theme
func (w *Writer) writePresentationRels(zw *zip.Writer) error {
	rels := xmlRelationships{Xmlns: nsRelationships}
	add := func(typ, target string) {
		rels.Relationships = append(rels.Relationships, xmlRelationship{
			ID:     fmt.Sprintf("rId%d", len(rels.Relationships)+1),
			Type:   typ,
			Target: target,
		})
	}

	add(relTypeSlideMaster, "slideMasters/slideMaster1.xml")
	for i := range w.deck.Slides {
		add(relTypeSlide, fmt.Sprintf("slides/slide%d.xml", i+1))
	}
	add(relTypePresProps, "presProps.xml")
	add(relTypeViewProps, "viewProps.xml")
	add(relTypeTableStyles, "tableStyles.xml")
	add(relTypeTheme, "theme/theme1.xml")

	return writeXMLToZip(zw, "ppt/_rels/presentation.xml.rels", rels)
}

func (w *Writer) writePresentation(zw *zip.Writer) error {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<p:presentation ` + nsDecl + ` saveSubsetFonts="1">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(w.deck.Slides) > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := range w.deck.Slides {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, emu(layout.SlideWidth), emu(layout.SlideHeight))
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return writeRawXMLToZip(zw, "ppt/presentation.xml", b.String())
}

func (w *Writer) writeMaster(zw *zip.Writer) error {
	if err := writeRawXMLToZip(zw, "ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	return writeXMLToZip(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
			{ID: "rId2", Type: relTypeTheme, Target: "../theme/theme1.xml"},
		},
	})
}

func (w *Writer) writeLayout(zw *zip.Writer) error {
	if err := writeRawXMLToZip(zw, "ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	return writeXMLToZip(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
		},
	})
}

func (w *Writer) writeSlide(zw *zip.Writer, idx int) error {
	slide := w.deck.Slides[idx]

	rels := xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		},
	}
	relFor := make(map[string]string)

	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<p:sld ` + nsDecl + `><p:cSld>`)
	fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, slide.Background)
	b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	id := 2
	for _, el := range slide.Elements {
		switch {
		case el.Rect != nil:
			writeRect(&b, id, el.Rect)
		case el.Text != nil:
			writeText(&b, id, el.Text)
		case el.Image != nil:
			mi, ok := w.mediaIdx[el.Image.Source]
			if !ok {
				continue
			}
			rid, ok := relFor[el.Image.Source]
			if !ok {
				rid = fmt.Sprintf("rId%d", len(rels.Relationships)+1)
				relFor[el.Image.Source] = rid
				rels.Relationships = append(rels.Relationships, xmlRelationship{
					ID: rid, Type: relTypeImage, Target: "../media/" + w.media[mi].name,
				})
			}
			writePicture(&b, id, rid, el.Image, w.media[mi].img)
		}
		id++
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)

	name := fmt.Sprintf("slide%d.xml", idx+1)
	if err := writeRawXMLToZip(zw, "ppt/slides/"+name, b.String()); err != nil {
		return err
	}
	return writeXMLToZip(zw, "ppt/slides/_rels/"+name+".rels", rels)
}

func emu(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

func xfrm(b *strings.Builder, box layout.Box) {
	fmt.Fprintf(b, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		emu(box.X), emu(box.Y), emu(box.W), emu(box.H))
}

func writeRect(b *strings.Builder, id int, r *layout.Rect) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Rectangle %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	xfrm(b, r.Box)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if r.Transparency > 0 {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr></a:solidFill>`, r.Fill, (100-r.Transparency)*1000)
	} else {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.Fill)
	}
	b.WriteString(`<a:ln><a:noFill/></a:ln></p:spPr></p:sp>`)
}

var alignAttr = map[style.Align]string{
	style.AlignLeft:   "l",
	style.AlignCenter: "ctr",
	style.AlignRight:  "r",
}

func writeText(b *strings.Builder, id int, t *layout.Text) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	xfrm(b, t.Box)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr><p:txBody>`)

	anchor := "ctr"
	if t.VAlign == layout.VAlignTop {
		anchor = "t"
	}
	b.WriteString(`<a:bodyPr wrap="square" rtlCol="0"`)
	if t.Margin > 0 {
		ins := int64(math.Round(t.Margin * emuPerPoint))
		fmt.Fprintf(b, ` lIns="%d" tIns="%d" rIns="%d" bIns="%d"`, ins, ins, ins, ins)
	}
	fmt.Fprintf(b, ` anchor="%s"><a:noAutofit/></a:bodyPr><a:lstStyle/>`, anchor)

	algn := alignAttr[t.Align]
	if algn == "" {
		algn = "l"
	}
	face := xmlEscape(t.FontFace)
	rPr := fmt.Sprintf(`<a:rPr lang="en-US" sz="%d"`, fontSize(t.FontSize))
	if t.Bold {
		rPr += ` b="1"`
	}
	rPr += fmt.Sprintf(` dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:latin typeface="%s"/><a:cs typeface="%s"/></a:rPr>`, t.Color, face, face)

	for _, p := range t.Paragraphs {
		fmt.Fprintf(b, `<a:p><a:pPr algn="%s"`, algn)
		if p.Marker != layout.MarkerNone {
			b.WriteString(` marL="127000" indent="-127000"`)
		}
		b.WriteString(`>`)
		if t.LineSpacing > 0 {
			fmt.Fprintf(b, `<a:lnSpc><a:spcPts val="%d"/></a:lnSpc>`, int(math.Round(t.LineSpacing*100)))
		}
		switch p.Marker {
		case layout.MarkerBullet:
			b.WriteString(`<a:buFont typeface="Arial"/><a:buChar char="&#8226;"/>`)
		case layout.MarkerNumber:
			b.WriteString(`<a:buFont typeface="+mj-lt"/><a:buAutoNum type="arabicPeriod"/>`)
		default:
			b.WriteString(`<a:buNone/>`)
		}
		b.WriteString(`</a:pPr>`)

		for i, line := range strings.Split(p.Text, "\n") {
			if i > 0 {
				b.WriteString(`<a:br>` + rPr + `</a:br>`)
			}
			if line == "" {
				continue
			}
			b.WriteString(`<a:r>` + rPr + `<a:t>` + xmlEscape(line) + `</a:t></a:r>`)
		}
		fmt.Fprintf(b, `<a:endParaRPr lang="en-US" sz="%d" dirty="0"/></a:p>`, fontSize(t.FontSize))
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

// fontSize converts points to hundredths within the range OOXML accepts
func fontSize(pt float64) int {
	sz := int(math.Round(pt * 100))
	if sz < 100 {
		return 100
	}
	if sz > 400000 {
		return 400000
	}
	return sz
}

func writePicture(b *strings.Builder, id int, rid string, im *layout.Image, img *images.Image) {
	box := im.Box
	var crop layout.Crop
	if im.Fit == layout.FitContain {
		box = layout.Contain(img.Width, img.Height, im.Box)
	} else {
		crop = layout.Cover(img.Width, img.Height, im.Box)
	}

	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="%s"/>`, rid)
	if crop != (layout.Crop{}) {
		fmt.Fprintf(b, `<a:srcRect l="%d" t="%d" r="%d" b="%d"/>`,
			pct(crop.Left), pct(crop.Top), pct(crop.Right), pct(crop.Bottom))
	}
	b.WriteString(`<a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr>`)
	xfrm(b, box)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

// pct converts a fraction to thousandths of a percent
func pct(f float64) int {
	return int(math.Round(f * 100000))
}
