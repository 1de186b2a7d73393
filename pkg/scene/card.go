package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/matzehuels/cardspace/pkg/records"
)

// Card is the managed object of one record. Its transform is written only
// by the transition controller.
type Card struct {
	id     string
	record records.Record
	pos    mgl64.Vec3
	rot    mgl64.Quat
}

// NewCard returns a card for rec at pos with a flat orientation and a fresh
// random id.
func NewCard(rec records.Record, pos mgl64.Vec3) *Card {
	return &Card{
		id:     uuid.NewString(),
		record: rec,
		pos:    pos,
		rot:    mgl64.QuatIdent(),
	}
}

func (c *Card) ID() string { return c.id }
func (c *Card) Record() records.Record { return c.record }
func (c *Card) Position() mgl64.Vec3 { return c.pos }
func (c *Card) SetPosition(p mgl64.Vec3) { c.pos = p }
func (c *Card) Rotation() mgl64.Quat { return c.rot }
func (c *Card) SetRotation(q mgl64.Quat) { c.rot = q }

// CardState is a read-only copy of a card's live transform.
type CardState struct {
	ID       string     `json:"id"`
	Index    int        `json:"index"`
	Name     string     `json:"name"`
	Position mgl64.Vec3 `json:"position"`
	// Rotation is the orientation quaternion as (w, x, y, z).
	Rotation [4]float64 `json:"rotation"`
}

// State snapshots the card.
func (c *Card) State() CardState {
	return CardState{
		ID:       c.id,
		Index:    c.record.Index,
		Name:     c.record.Name,
		Position: c.pos,
		Rotation: [4]float64{c.rot.W, c.rot.V[0], c.rot.V[1], c.rot.V[2]},
	}
}
