package service

import (
	"fmt"
	"sync"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

// KindRegistry holds the per-kind validators and policy gates used by a run.
type KindRegistry struct {
	mu          sync.RWMutex
	validators  map[domain.ResourceKind]ports.DeclarationValidator
	policyGates map[domain.ResourceKind]ports.PolicyGate
}

func NewKindRegistry() *KindRegistry {
	return &KindRegistry{
		validators:  make(map[domain.ResourceKind]ports.DeclarationValidator),
		policyGates: make(map[domain.ResourceKind]ports.PolicyGate),
	}
}

func (r *KindRegistry) RegisterValidator(validator ports.DeclarationValidator) error {
	if validator == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil validator")
	}
	kind := validator.Kind()
	if kind == "" {
		return errors.New(errors.CodeInternal, "validator kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[kind]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("validator for kind '%s' already registered", kind))
	}
	r.validators[kind] = validator
	return nil
}

func (r *KindRegistry) GetValidator(kind domain.ResourceKind) (ports.DeclarationValidator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	validator, exists := r.validators[kind]
	if !exists {
		return nil, errors.New(errors.CodeNotImplemented, fmt.Sprintf("validator for kind '%s' not implemented", kind))
	}
	return validator, nil
}

func (r *KindRegistry) RegisterPolicyGate(gate ports.PolicyGate) error {
	if gate == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil policy gate")
	}
	kind := gate.Kind()
	if kind == "" {
		return errors.New(errors.CodeInternal, "policy gate kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.policyGates[kind]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("policy gate for kind '%s' already registered", kind))
	}
	r.policyGates[kind] = gate
	return nil
}

// GetPolicyGate returns the gate for kind. Kinds without governance rules
// have no gate; ok is false for them.
func (r *KindRegistry) GetPolicyGate(kind domain.ResourceKind) (gate ports.PolicyGate, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gate, ok = r.policyGates[kind]
	return gate, ok
}
