// Package zonedecode sniffs a zone's on-disk content (TZif bytes, a
// registry YAML fragment, or the textual codec) and decodes it
// through the matching core path. Shared by cmd/tzinspect, cmd/tzdiff, and
// cmd/tzctl so none of the cmd binaries re-implement the sniff-and-adapt
// logic.
package zonedecode

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	_ "github.com/ngrash/go-tzrules/tzif" // registers the bytes decoder
	_ "github.com/ngrash/go-tzrules/tzreg" // registers the registry decoder
	"github.com/ngrash/go-tzrules/tztext"
	"github.com/ngrash/go-tzrules/tzzone"
)

// RegistryYAML mirrors tzzone.RegistryFields for the zone-bundle / single
// fragment YAML shape tzctl and tzinspect both accept.
type RegistryYAML struct {
	Bias         int              `yaml:"bias"`
	StandardName string           `yaml:"standardName,omitempty"`
	DaylightName string           `yaml:"daylightName,omitempty"`
	DaylightBias int              `yaml:"daylightBias"`
	StandardDate SystemTimeYAML   `yaml:"standardDate,omitempty"`
	DaylightDate SystemTimeYAML   `yaml:"daylightDate,omitempty"`
	DynamicRules []YearRecordYAML `yaml:"dynamicRules,omitempty"`
	FirstYear    int              `yaml:"firstYear,omitempty"`
	LastYear     int              `yaml:"lastYear,omitempty"`
}

type SystemTimeYAML struct {
	Year, Month, DayOfWeek, Day        int
	Hour, Minute, Second, Milliseconds int
}

type YearRecordYAML struct {
	Year                       int
	Bias, DaylightBias         int
	StandardDate, DaylightDate SystemTimeYAML
}

func (y SystemTimeYAML) toFields() tzzone.RegistrySystemTime {
	return tzzone.RegistrySystemTime{
		Year: y.Year, Month: y.Month, DayOfWeek: y.DayOfWeek, Day: y.Day,
		Hour: y.Hour, Minute: y.Minute, Second: y.Second, Milliseconds: y.Milliseconds,
	}
}

func (y RegistryYAML) ToFields() tzzone.RegistryFields {
	fields := tzzone.RegistryFields{
		Bias:         y.Bias,
		StandardName: y.StandardName,
		DaylightName: y.DaylightName,
		DaylightBias: y.DaylightBias,
		StandardDate: y.StandardDate.toFields(),
		DaylightDate: y.DaylightDate.toFields(),
		FirstYear:    y.FirstYear,
		LastYear:     y.LastYear,
	}
	for _, r := range y.DynamicRules {
		fields.DynamicRules = append(fields.DynamicRules, tzzone.RegistryYearRecord{
			Year:         r.Year,
			Bias:         r.Bias,
			DaylightBias: r.DaylightBias,
			StandardDate: r.StandardDate.toFields(),
			DaylightDate: r.DaylightDate.toFields(),
		})
	}
	return fields
}

// Decode sniffs b's content and decodes it into a *tzzone.Zone under id:
// TZif magic first, then a YAML registry fragment, falling back to the
// textual codec.
func Decode(id string, b []byte) (*tzzone.Zone, error) {
	if bytes.HasPrefix(b, []byte("TZif")) {
		cache := tzzone.NewCache()
		return tzzone.FindZoneByID(cache, bytesSource{id: id, bytes: b}, id, false)
	}

	var reg RegistryYAML
	if err := yaml.Unmarshal(b, &reg); err == nil && (reg.Bias != 0 || reg.StandardName != "" || len(reg.DynamicRules) > 0) {
		cache := tzzone.NewCache()
		return tzzone.FindZoneByID(cache, registrySource{id: id, fields: reg.ToFields()}, id, false)
	}

	return tztext.Deserialize(string(b))
}

type bytesSource struct {
	id    string
	bytes []byte
}

func (s bytesSource) LoadBytes(id string) ([]byte, error) {
	if id != s.id {
		return nil, fmt.Errorf("unknown id %q", id)
	}
	return s.bytes, nil
}

func (s bytesSource) LoadRegistry(string) (tzzone.RegistryFields, error) {
	return tzzone.RegistryFields{}, fmt.Errorf("registry lookup not supported")
}

func (s bytesSource) Enumerate() ([]string, error) { return []string{s.id}, nil }

func (s bytesSource) ResolveLocal() (string, []byte, *tzzone.RegistryFields, error) {
	return s.id, s.bytes, nil, nil
}

func (s bytesSource) GetLocalizedName(string, tzzone.NameKind) (string, bool) { return "", false }

type registrySource struct {
	id     string
	fields tzzone.RegistryFields
}

func (s registrySource) LoadBytes(string) ([]byte, error) {
	return nil, fmt.Errorf("bytes form not available")
}

func (s registrySource) LoadRegistry(id string) (tzzone.RegistryFields, error) {
	if id != s.id {
		return tzzone.RegistryFields{}, fmt.Errorf("unknown id %q", id)
	}
	return s.fields, nil
}

func (s registrySource) Enumerate() ([]string, error) { return []string{s.id}, nil }

func (s registrySource) ResolveLocal() (string, []byte, *tzzone.RegistryFields, error) {
	return s.id, nil, &s.fields, nil
}

func (s registrySource) GetLocalizedName(string, tzzone.NameKind) (string, bool) { return "", false }
