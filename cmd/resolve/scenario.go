package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/KirkDiggler/damage-resolver/internal/repositories/profiles"
	"github.com/KirkDiggler/damage-resolver/internal/services/resolver"
)

// Scenario is a set of defense profiles and the attacks made against them
type Scenario struct {
	Profiles []profiles.ProfileData `yaml:"profiles"`
	Attacks  []Attack               `yaml:"attacks"`
}

// Attack targets a profile by ID
type Attack struct {
	ID     string                 `yaml:"id"`
	Target string                 `yaml:"target"`
	Damage []resolver.DamageInput `yaml:"damage"`
}

// LoadScenario reads a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return parseScenario(bytes.NewReader(data))
}

func parseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dnderr.InvalidArgument("scenario is empty")
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to decode scenario")
	}

	for i, a := range s.Attacks {
		if a.Target == "" {
			return nil, dnderr.InvalidArgumentf("attack %d has no target", i).WithMeta("index", i)
		}
	}
	return &s, nil
}

// Seed validates every profile and stores it. Profiles that already exist
// are left untouched so a scenario can be replayed against Redis.
func (s *Scenario) Seed(ctx context.Context, repo profiles.Repository) error {
	for _, data := range s.Profiles {
		profile, err := profiles.FromData(data)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, profile); err != nil {
			if dnderr.IsAlreadyExists(err) {
				log.Printf("Profile %s already stored, keeping it", profile.ID)
				continue
			}
			return dnderr.Wrapf(err, "failed to store profile %s", data.Name)
		}
		log.Printf("Stored profile %s (%s)", profile.Name, profile.ID)
	}
	return nil
}

// Inputs converts the attacks for the resolver
func (s *Scenario) Inputs() []*resolver.ResolveInput {
	inputs := make([]*resolver.ResolveInput, 0, len(s.Attacks))
	for _, a := range s.Attacks {
		inputs = append(inputs, &resolver.ResolveInput{
			AttackID:  a.ID,
			ProfileID: a.Target,
			Damage:    a.Damage,
		})
	}
	return inputs
}
