package auditrecord

import (
	"encoding/json"
	"fmt"
	"strconv"

	"greenaudit/internal/domain/audit"
)

// The section codec turns each named part of a record into a single opaque
// text value and back. Structured sections use canonical JSON; scalar metadata
// uses primitive text encodings. It is pure; all I/O lives in the store.

// sectionValue returns the record's section payload for key, or false when the
// section is absent or key is not a section key.
func sectionValue(rec audit.Record, key string) (any, bool) {
	switch key {
	case audit.KeyFacilityInfrastructure:
		if rec.FacilityInfrastructure != nil {
			return rec.FacilityInfrastructure, true
		}
	case audit.KeyWasteStreams:
		if rec.WasteStreams != nil {
			return rec.WasteStreams, true
		}
	case audit.KeySpecialWaste:
		if rec.SpecialWaste != nil {
			return rec.SpecialWaste, true
		}
	case audit.KeyOrganicWaste:
		if rec.OrganicWaste != nil {
			return rec.OrganicWaste, true
		}
	case audit.KeyPreventionMeasures:
		if rec.PreventionMeasures != nil {
			return rec.PreventionMeasures, true
		}
	case audit.KeyBehaviourTraining:
		if rec.BehaviourTraining != nil {
			return rec.BehaviourTraining, true
		}
	}
	return nil, false
}

// encodeSection marshals a section payload to JSON text.
// PRE: v is one of the six section types
// POST: Returns deterministic JSON text
func encodeSection(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode section: %w", err)
	}
	return string(b), nil
}

// decodeSection parses text into the section named by key and attaches it to
// rec. The bool result reports whether key named a section at all; the error
// reports a parse failure, which callers degrade to section-absent.
// PRE: rec is non-nil
// POST: On success the matching section pointer on rec is set
func decodeSection(rec *audit.Record, key, text string) (bool, error) {
	switch key {
	case audit.KeyFacilityInfrastructure:
		var s audit.FacilityInfrastructure
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return true, err
		}
		rec.FacilityInfrastructure = &s
	case audit.KeyWasteStreams:
		var s audit.WasteStreams
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return true, err
		}
		rec.WasteStreams = &s
	case audit.KeySpecialWaste:
		var s audit.SpecialWaste
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return true, err
		}
		rec.SpecialWaste = &s
	case audit.KeyOrganicWaste:
		var s audit.OrganicWaste
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return true, err
		}
		rec.OrganicWaste = &s
	case audit.KeyPreventionMeasures:
		var s audit.PreventionMeasures
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return true, err
		}
		rec.PreventionMeasures = &s
	case audit.KeyBehaviourTraining:
		var s audit.BehaviourTraining
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return true, err
		}
		rec.BehaviourTraining = &s
	default:
		return false, nil
	}
	return true, nil
}

// encodeBool encodes boolean metadata as "true"/"false" text.
func encodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// decodeBool decodes boolean metadata: exact equality with "true", anything
// else is false.
func decodeBool(s string) bool {
	return s == "true"
}

// encodeInt encodes integer metadata as decimal text.
func encodeInt(n int) string {
	return strconv.Itoa(n)
}

// decodeInt decodes integer metadata. Unlike section decoding this fails with
// an error on non-numeric input: metadata corruption should surface.
func decodeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer metadata %q: %w", s, err)
	}
	return n, nil
}
