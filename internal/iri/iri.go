// Package iri converts between resource-path references and numeric ids.
// Relations in request and response bodies are expressed as resource paths
// ("/api/pools/3") rather than bare ids.
package iri

import (
	"fmt"
	"strconv"
	"strings"
)

// Resource path prefixes.
const (
	Pools        = "/api/pools"
	Reservations = "/api/reservations"
	Users        = "/api/users"
)

// Pool builds the resource path for a pool id.
func Pool(id uint) string {
	return fmt.Sprintf("%s/%d", Pools, id)
}

// Reservation builds the resource path for a reservation id.
func Reservation(id uint) string {
	return fmt.Sprintf("%s/%d", Reservations, id)
}

// User builds the resource path for a user id.
func User(id uint) string {
	return fmt.Sprintf("%s/%d", Users, id)
}

// ParseID extracts the numeric id from a resource path under the given
// prefix. It fails on a different prefix, a non-numeric tail or extra
// path segments.
func ParseID(prefix, ref string) (uint, error) {
	rest, ok := strings.CutPrefix(ref, prefix+"/")
	if !ok {
		return 0, fmt.Errorf("reference %q is not under %s", ref, prefix)
	}
	id, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("reference %q has invalid id", ref)
	}
	return uint(id), nil
}
