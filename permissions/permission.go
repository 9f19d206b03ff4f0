package permissions

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"roombooking/config"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Action string

const (
	ActionOverride Action = "override"
	ActionModerate Action = "moderate"
	ActionCancel   Action = "cancel"
)

// Relations a principal can have to a subject.
const (
	RelationAny    = "*"
	RelationAdmin  = "admin"
	RelationOwner  = "owner"
	RelationBooker = "booker"
)

// Subject is what a decision is made about. BookedFor and CreatedBy are
// empty for room-level decisions.
type Subject struct {
	RoomID    string
	RoomOwner string
	BookedFor string
	CreatedBy string
}

// Policy decides who may bypass availability, moderate and cancel.
type Policy interface {
	Name() string
	CanOverride(ctx context.Context, principal string, subject Subject) bool
	CanModerate(ctx context.Context, principal string, subject Subject) bool
	CanCancel(ctx context.Context, principal string, subject Subject) bool
}

type Strategy struct {
	Name  string              `json:"name"`
	Rules map[Action][]string `json:"rules"`
}

type PermissionData struct {
	Strategies []Strategy `json:"strategies"`
}

func (r *PermissionData) FindStrategy(name string) (Strategy, bool) {
	idx := slices.IndexFunc(r.Strategies, func(s Strategy) bool {
		return s.Name == name
	})

	if idx == -1 {
		return Strategy{}, false
	}

	return r.Strategies[idx], true
}

var (
	loadOnce sync.Once
	loaded   *PermissionData
)

func Get() *PermissionData {
	loadOnce.Do(func() {
		var permissions PermissionData

		err := json.Unmarshal(permissionsData, &permissions)
		if err != nil {
			log.Err(err).Msg("Failed to decode embedded permissions")

			return
		}

		log.Info().Int("strategies", len(permissions.Strategies)).Msg("Successfully loaded embedded permissions")

		loaded = &permissions
	})

	return loaded
}

type rulePolicy struct {
	strategy Strategy
	admins   []string
}

// Resolve returns the strategy registered under name. Admins come from APP_ADMINS.
func Resolve(name string, cfg *config.Config) (Policy, error) {
	data := Get()
	if data == nil {
		return nil, fmt.Errorf("permissions not loaded")
	}

	strategy, ok := data.FindStrategy(name)
	if !ok {
		return nil, fmt.Errorf("unknown permission strategy %q", name)
	}

	return &rulePolicy{strategy: strategy, admins: cfg.App.Admins}, nil
}

// New resolves the configured strategy and falls back to owner.
func New(cfg *config.Config) Policy {
	policy, err := Resolve(cfg.App.Policy, cfg)
	if err == nil {
		return policy
	}

	log.Warn().Err(err).Str("policy", cfg.App.Policy).Msg("falling back to owner permission strategy")

	policy, err = Resolve(RelationOwner, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("owner permission strategy unavailable")
	}

	return policy
}

func (p *rulePolicy) Name() string {
	return p.strategy.Name
}

func (p *rulePolicy) CanOverride(_ context.Context, principal string, subject Subject) bool {
	return p.allowed(ActionOverride, principal, subject)
}

func (p *rulePolicy) CanModerate(_ context.Context, principal string, subject Subject) bool {
	return p.allowed(ActionModerate, principal, subject)
}

func (p *rulePolicy) CanCancel(_ context.Context, principal string, subject Subject) bool {
	return p.allowed(ActionCancel, principal, subject)
}

func (p *rulePolicy) allowed(action Action, principal string, subject Subject) bool {
	for _, relation := range p.strategy.Rules[action] {
		if p.holds(relation, principal, subject) {
			return true
		}
	}

	return false
}

func (p *rulePolicy) holds(relation, principal string, subject Subject) bool {
	if relation == RelationAny {
		return true
	}

	if principal == "" {
		return false
	}

	switch relation {
	case RelationAdmin:
		return slices.Contains(p.admins, principal)
	case RelationOwner:
		return subject.RoomOwner == principal
	case RelationBooker:
		return subject.BookedFor == principal || subject.CreatedBy == principal
	}

	return false
}
