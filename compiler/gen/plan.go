package gen

import (
	"errors"
	"fmt"

	"github.com/amanteaux/daogen/schema"
)

// Policy is the regeneration policy of an artifact.
type Policy uint8

// List of policies.
const (
	// PolicyAlways regenerates the artifact on every run.
	PolicyAlways Policy = iota
	// PolicyOnceIfAbsent generates the artifact only when its file does not
	// exist. Existing files belong to the user.
	PolicyOnceIfAbsent
)

// String returns the name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyAlways:
		return "always"
	case PolicyOnceIfAbsent:
		return "once_if_absent"
	default:
		return fmt.Sprintf("policy(%d)", p)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Plan is an artifact to emit.
type Plan struct {
	Table    *schema.Table
	Mode     Mode
	Identity Identity
	Policy   Policy
	// DAO is set for the DAO modes.
	DAO *DAO
	// Err is set when the table cannot be generated. The artifact is then
	// reported as failed without being rendered.
	Err error
}

// TablePlan holds the regenerated artifacts of a table.
type TablePlan struct {
	Table *schema.Table
	Plans []*Plan
	// DAO is nil when the table has no DAO.
	DAO *DAO
	// Skip is set when the DAO was deliberately not planned.
	Skip error
	// Err is the schema error of an invalid table.
	Err error
}

// Planner decides which artifacts exist for the tables of a database.
type Planner struct {
	strategy Strategy
	synth    Synthesizer
}

// NewPlanner returns a planner naming artifacts with s and deriving DAOs
// with synth.
func NewPlanner(s Strategy, synth Synthesizer) *Planner {
	return &Planner{strategy: s, synth: synth}
}

// PlanTable plans the regenerated artifacts of t in mode order: value, record,
// DAO base (when the synthesizer accepts the table), interface, then the
// table descriptor.
// The returned error is a configuration error; schema errors are carried by
// the plans.
func (p *Planner) PlanTable(t *schema.Table) (*TablePlan, error) {
	tp := &TablePlan{Table: t}
	var daoErr error
	if err := t.Validate(); err != nil {
		tp.Err = NewSchemaError(t.QualifiedName(), "", "invalid table", err)
	} else {
		dao, err := p.synth.Synthesize(t)
		switch {
		case err == nil:
			tp.DAO = dao
		case errors.Is(err, ErrNoSingleColumnKey):
			tp.Skip = err
		case IsConfigError(err):
			return nil, err
		default:
			daoErr = err
		}
	}
	for _, mode := range []Mode{ModeValue, ModeRecord, ModeDAOBase, ModeInterface, ModeTable} {
		if mode == ModeDAOBase && tp.DAO == nil && daoErr == nil {
			continue
		}
		plan, err := p.plan(t, mode, PolicyAlways)
		if err != nil {
			return nil, err
		}
		plan.Err = tp.Err
		if mode == ModeDAOBase {
			plan.DAO, plan.Err = tp.DAO, daoErr
		}
		tp.Plans = append(tp.Plans, plan)
	}
	return tp, nil
}

// PlanChildren plans the generate-once artifacts of a schema: a bean for
// every table, then a DAO child for every table having a DAO. Empty schemas
// have no children.
func (p *Planner) PlanChildren(tables []*TablePlan) ([]*Plan, error) {
	var plans []*Plan
	for _, tp := range tables {
		plan, err := p.plan(tp.Table, ModeBean, PolicyOnceIfAbsent)
		if err != nil {
			return nil, err
		}
		plan.Err = tp.Err
		plans = append(plans, plan)
	}
	for _, tp := range tables {
		if tp.DAO == nil {
			continue
		}
		plan, err := p.plan(tp.Table, ModeDAOChild, PolicyOnceIfAbsent)
		if err != nil {
			return nil, err
		}
		plan.DAO = tp.DAO
		plans = append(plans, plan)
	}
	return plans, nil
}

func (p *Planner) plan(t *schema.Table, mode Mode, policy Policy) (*Plan, error) {
	id, err := p.strategy.Resolve(t, mode)
	if err != nil {
		return nil, err
	}
	return &Plan{Table: t, Mode: mode, Identity: id, Policy: policy}, nil
}
