package lot

import (
	"reflect"

	"github.com/cloudx-io/openlot/core"
	"github.com/cloudx-io/openlot/reactive"
)

// Artwork is the piece offered in a lot. Apart from its sold status the
// lot layer treats it as opaque.
type Artwork struct {
	id    string
	graph *reactive.Graph

	soldStatus *reactive.Cell[string]
	title      *reactive.Cell[core.Optional[string]]
	imageURL   *reactive.Cell[core.Optional[string]]
	images     *reactive.Cell[any]
}

func artworkFromPayload(g *reactive.Graph, p Payload) *Artwork {
	return &Artwork{
		id:         p.String(keyID).OrElse(""),
		graph:      g,
		soldStatus: reactive.NewCell(g, soldStatusFromPayload(p)),
		title:      reactive.NewCell(g, p.String(keyTitle)),
		imageURL:   reactive.NewCell(g, p.String(keyImageURL)),
		images:     reactive.NewCellFunc(g, p.Raw(keyImages), reflect.DeepEqual),
	}
}

// soldStatusFromPayload prefers an explicit sold_status string and falls
// back to the boolean sold flag.
func soldStatusFromPayload(p Payload) string {
	if status, ok := p.String(keySoldStatus).Get(); ok {
		return status
	}
	if p.Bool(keySold).OrElse(false) {
		return core.Sold.String()
	}
	return ""
}

// ID returns the artwork id. It never changes.
func (a *Artwork) ID() string { return a.id }

// SoldStatus is the raw sold status; see core.ParseSoldStatus.
func (a *Artwork) SoldStatus() reactive.Value[string] { return a.soldStatus }

func (a *Artwork) Title() reactive.Value[core.Optional[string]] { return a.title }

func (a *Artwork) ImageURL() reactive.Value[core.Optional[string]] { return a.imageURL }

// Images is opaque image metadata passed through from the payload.
func (a *Artwork) Images() reactive.Value[any] { return a.images }

// MergeFrom copies every field of source onto a, keeping a's id. Listeners
// see the merged state only after every field has been written.
func (a *Artwork) MergeFrom(source *Artwork) {
	if a == nil || source == nil {
		return
	}

	a.graph.Batch(func() {
		a.soldStatus.Set(source.soldStatus.Get())
		a.title.Set(source.title.Get())
		a.imageURL.Set(source.imageURL.Get())
		a.images.Set(source.images.Get())
	})
}

func (a *Artwork) hashFields() []core.HashField {
	return []core.HashField{
		{Name: "artwork.id", Value: a.id},
		{Name: "artwork.sold_status", Value: a.soldStatus.Get()},
		{Name: "artwork.title", Value: core.OptionalHashValue(a.title.Get())},
		{Name: "artwork.image_url", Value: core.OptionalHashValue(a.imageURL.Get())},
		{Name: "artwork.images", Value: opaqueHashValue(a.images.Get())},
	}
}
