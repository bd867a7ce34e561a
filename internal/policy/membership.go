// Package policy wires team membership into the authorization gate. Every
// mutating handler checks before touching a row, so a denied actor never
// leaves a partial write behind.
package policy

import (
	"context"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/gate"
	"github.com/moduquote/moduquote/internal/models"
)

// Resource type names registered on the gate.
const (
	ResourceTeam    = "team"
	ResourceProject = "project"
	ResourceQuote   = "quote"
	ResourceProduct = "product"
)

// TeamPolicy authorizes by membership: any member may view and author inside
// the team, only the owner may change the team itself.
type TeamPolicy struct {
	DB *gorm.DB
}

func (p *TeamPolicy) Can(ctx context.Context, userID uint, action gate.Action, resource any) bool {
	team, ok := resource.(*models.Team)
	if !ok || team == nil {
		return false
	}
	switch action {
	case gate.ActionUpdate, gate.ActionDelete:
		return team.OwnerID == userID
	default:
		return p.isMember(ctx, userID, team.ID)
	}
}

func (p *TeamPolicy) isMember(ctx context.Context, userID, teamID uint) bool {
	var count int64
	err := p.DB.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return err == nil && count > 0
}

// ScopedPolicy authorizes anything that hangs off a team (projects, quotes,
// catalog products) by membership in that team. The resource is the owning
// team id.
type ScopedPolicy struct {
	DB *gorm.DB
}

func (p *ScopedPolicy) Can(ctx context.Context, userID uint, action gate.Action, resource any) bool {
	teamID, ok := resource.(uint)
	if !ok || teamID == 0 {
		return false
	}
	var count int64
	err := p.DB.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return err == nil && count > 0
}

// NewGate builds the application gate with all policies registered.
func NewGate(db *gorm.DB) *gate.Gate[uint] {
	g := gate.NewGate[uint]()
	g.Register(ResourceTeam, &TeamPolicy{DB: db})
	scoped := &ScopedPolicy{DB: db}
	g.Register(ResourceProject, scoped)
	g.Register(ResourceQuote, scoped)
	g.Register(ResourceProduct, scoped)
	return g
}
