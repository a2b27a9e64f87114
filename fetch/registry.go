// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	version "github.com/hashicorp/go-version"

	"github.com/reqtmpl/reqtmpl"
)

// Registry is a catalog of endpoint templates keyed by versioned service
// identifiers of the form "servicename.vN". It gives an application a single
// place to declare its parameterized endpoints once and look them up by name
// at request time.
//
// A Registry is safe for concurrent use.
type Registry struct {
	// must lock "mu" while interacting with this map
	entries map[string]*reqtmpl.Template
	mu      sync.Mutex
}

// ErrEndpointNotRegistered is returned when no endpoint is registered under
// the requested service name.
type ErrEndpointNotRegistered struct {
	name string
}

// Error returns a customized error message.
func (e *ErrEndpointNotRegistered) Error() string {
	return fmt.Sprintf("no endpoint registered for service %s", e.name)
}

// ErrVersionNotSupported is returned when the requested service name is
// registered but not at the requested version.
type ErrVersionNotSupported struct {
	name    string
	version string
}

// Error returns a customized error message.
func (e *ErrVersionNotSupported) Error() string {
	return fmt.Sprintf("service %s is not registered at version %s", e.name, e.version)
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*reqtmpl.Template),
	}
}

// Register stores the given template under the given service identifier,
// which must be of the form "servicename.vN". Registering an identifier that
// is already present replaces the previous template.
func (r *Registry) Register(id string, tmpl *reqtmpl.Template) error {
	if _, _, err := parseEndpointID(id); err != nil {
		return err
	}
	r.mu.Lock()
	r.entries[id] = tmpl
	r.mu.Unlock()
	return nil
}

// Template returns the template registered under the given service
// identifier, which should be of the form "servicename.vN".
func (r *Registry) Template(id string) (*reqtmpl.Template, error) {
	svcName, _, err := parseEndpointID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.entries[id]; ok {
		return tmpl, nil
	}

	// See if we have a matching service as that would indicate the service
	// is registered, but not at the requested version.
	for entryID := range r.entries {
		if strings.HasPrefix(entryID, svcName+".") {
			return nil, &ErrVersionNotSupported{
				name:    svcName,
				version: id[len(svcName)+1:],
			}
		}
	}

	return nil, &ErrEndpointNotRegistered{name: svcName}
}

// Newest returns the template registered under the given service name whose
// major version is the highest of those satisfying the given version
// constraint, e.g. ">= 2, < 4". An empty constraint accepts any version.
func (r *Registry) Newest(name string, constraint string) (*reqtmpl.Template, error) {
	var constraints version.Constraints
	if constraint != "" {
		var err error
		constraints, err = version.NewConstraint(constraint)
		if err != nil {
			return nil, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		best        *reqtmpl.Template
		bestVersion *version.Version
		nameSeen    bool
	)
	for entryID, tmpl := range r.entries {
		entryName, major, err := parseEndpointID(entryID)
		if err != nil || entryName != name {
			continue
		}
		nameSeen = true
		v, err := version.NewVersion(strconv.FormatUint(major, 10))
		if err != nil {
			continue
		}
		if constraints != nil && !constraints.Check(v) {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best, bestVersion = tmpl, v
		}
	}

	if best != nil {
		return best, nil
	}
	if nameSeen {
		return nil, &ErrVersionNotSupported{name: name, version: constraint}
	}
	return nil, &ErrEndpointNotRegistered{name: name}
}

func parseEndpointID(id string) (string, uint64, error) {
	parts := strings.SplitN(id, ".", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid service ID format (i.e. service.vN): %s", id)
	}

	if !strings.HasPrefix(parts[1], "v") {
		return "", 0, fmt.Errorf("invalid service version: must be \"v\" followed by an integer major version number")
	}
	parsedVersion, err := strconv.ParseUint(parts[1][1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid service version: %v", err)
	}

	return parts[0], parsedVersion, nil
}
