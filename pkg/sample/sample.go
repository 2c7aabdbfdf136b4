// Package sample ships a small, fully connected demonstration universe. It is
// used by the console demo and as seed data for a fresh server.
package sample

import (
	"fmt"
	"strings"

	"github.com/lorebase/lorebase/pkg/graph"
)

// Entity types used by the sample universe.
const (
	TypeCharacter    = "character"
	TypePlanet       = "planet"
	TypeOrganization = "organization"
	TypeVehicle      = "vehicle"
)

// Universe builds the demonstration graph: characters, planets,
// organizations and vehicles connected by family, mentorship, membership,
// ownership and event relationships. The content is deterministic, including
// the relationship ids.
func Universe() (*graph.Graph, error) {
	return graph.FromRecords(Entities(), Relationships())
}

// Entities returns the sample entities in a stable order.
func Entities() []graph.Entity {
	return []graph.Entity{
		{ID: "luke_skywalker", Type: TypeCharacter, Properties: map[string]string{
			"name":            "Luke Skywalker",
			"species":         "Human",
			"homeworld":       "Tatooine",
			"affiliation":     "Rebel Alliance",
			"force_sensitive": "true",
			"description":     "Jedi Knight who destroyed the Death Star",
		}},
		{ID: "darth_vader", Type: TypeCharacter, Properties: map[string]string{
			"name":            "Darth Vader",
			"species":         "Human",
			"homeworld":       "Tatooine",
			"affiliation":     "Galactic Empire",
			"force_sensitive": "true",
			"description":     "Sith Lord, former Jedi Anakin Skywalker",
		}},
		{ID: "princess_leia", Type: TypeCharacter, Properties: map[string]string{
			"name":            "Princess Leia Organa",
			"species":         "Human",
			"homeworld":       "Alderaan",
			"affiliation":     "Rebel Alliance",
			"force_sensitive": "true",
			"description":     "Leader of the Rebel Alliance",
		}},
		{ID: "han_solo", Type: TypeCharacter, Properties: map[string]string{
			"name":            "Han Solo",
			"species":         "Human",
			"homeworld":       "Corellia",
			"affiliation":     "Rebel Alliance",
			"force_sensitive": "false",
			"description":     "Smuggler and pilot of the Millennium Falcon",
		}},
		{ID: "obi_wan_kenobi", Type: TypeCharacter, Properties: map[string]string{
			"name":            "Obi-Wan Kenobi",
			"species":         "Human",
			"homeworld":       "Stewjon",
			"affiliation":     "Jedi Order",
			"force_sensitive": "true",
			"description":     "Jedi Master and mentor to Luke Skywalker",
		}},
		{ID: "yoda", Type: TypeCharacter, Properties: map[string]string{
			"name":            "Yoda",
			"species":         "Unknown",
			"homeworld":       "Unknown",
			"affiliation":     "Jedi Order",
			"force_sensitive": "true",
			"description":     "Grand Master of the Jedi Order",
		}},

		{ID: "tatooine", Type: TypePlanet, Properties: map[string]string{
			"name":        "Tatooine",
			"climate":     "Arid",
			"terrain":     "Desert",
			"population":  "200000",
			"description": "Desert planet with twin suns",
		}},
		{ID: "alderaan", Type: TypePlanet, Properties: map[string]string{
			"name":        "Alderaan",
			"climate":     "Temperate",
			"terrain":     "Grasslands, mountains",
			"population":  "2000000000",
			"description": "Peaceful planet destroyed by Death Star",
		}},
		{ID: "coruscant", Type: TypePlanet, Properties: map[string]string{
			"name":        "Coruscant",
			"climate":     "Temperate",
			"terrain":     "Cityscape",
			"population":  "1000000000000",
			"description": "Capital of the Galactic Republic and Empire",
		}},
		{ID: "dagobah", Type: TypePlanet, Properties: map[string]string{
			"name":        "Dagobah",
			"climate":     "Murky",
			"terrain":     "Swamp, jungles",
			"population":  "Unknown",
			"description": "Swamp planet where Yoda lived in exile",
		}},
		{ID: "corellia", Type: TypePlanet, Properties: map[string]string{
			"name":        "Corellia",
			"climate":     "Temperate",
			"terrain":     "Plains, urban areas",
			"population":  "3000000000",
			"description": "Industrial world known for shipbuilding and smugglers",
		}},

		{ID: "jedi_order", Type: TypeOrganization, Properties: map[string]string{
			"name":        "Jedi Order",
			"kind":        "Religious Order",
			"alignment":   "Light Side",
			"description": "Ancient order of Force-sensitive peacekeepers",
		}},
		{ID: "sith", Type: TypeOrganization, Properties: map[string]string{
			"name":        "Sith",
			"kind":        "Religious Order",
			"alignment":   "Dark Side",
			"description": "Ancient order of Force-sensitive dark warriors",
		}},
		{ID: "rebel_alliance", Type: TypeOrganization, Properties: map[string]string{
			"name":        "Rebel Alliance",
			"kind":        "Military Organization",
			"alignment":   "Good",
			"description": "Resistance movement against the Galactic Empire",
		}},
		{ID: "galactic_empire", Type: TypeOrganization, Properties: map[string]string{
			"name":        "Galactic Empire",
			"kind":        "Government",
			"alignment":   "Evil",
			"description": "Authoritarian regime ruling the galaxy",
		}},

		{ID: "millennium_falcon", Type: TypeVehicle, Properties: map[string]string{
			"name":         "Millennium Falcon",
			"kind":         "Light Freighter",
			"manufacturer": "Corellian Engineering Corporation",
			"description":  "Fast smuggling ship owned by Han Solo",
		}},
		{ID: "death_star", Type: TypeVehicle, Properties: map[string]string{
			"name":         "Death Star",
			"kind":         "Space Station",
			"manufacturer": "Galactic Empire",
			"description":  "Moon-sized battle station with planet-destroying capability",
		}},
		{ID: "x_wing", Type: TypeVehicle, Properties: map[string]string{
			"name":         "X-wing Starfighter",
			"kind":         "Starfighter",
			"manufacturer": "Incom Corporation",
			"description":  "Versatile starfighter used by the Rebel Alliance",
		}},
	}
}

// Relationships returns the sample relationships in a stable order, with
// deterministic ids derived from the endpoints and the relation type.
func Relationships() []graph.Relationship {
	records := []struct {
		source, target, relType string
		properties              map[string]string
	}{
		// family
		{"darth_vader", "luke_skywalker", "father_of", map[string]string{"relationship": "father-son"}},
		{"darth_vader", "princess_leia", "father_of", map[string]string{"relationship": "father-daughter"}},
		{"luke_skywalker", "princess_leia", "sibling_of", map[string]string{"relationship": "twin siblings"}},

		// mentorship
		{"obi_wan_kenobi", "luke_skywalker", "mentor_of", map[string]string{"relationship": "Jedi training"}},
		{"yoda", "luke_skywalker", "mentor_of", map[string]string{"relationship": "Jedi training"}},
		{"obi_wan_kenobi", "darth_vader", "former_mentor_of", map[string]string{"relationship": "former Padawan"}},

		// origins
		{"luke_skywalker", "tatooine", "born_on", map[string]string{"relationship": "homeworld"}},
		{"darth_vader", "tatooine", "born_on", map[string]string{"relationship": "homeworld"}},
		{"princess_leia", "alderaan", "born_on", map[string]string{"relationship": "homeworld"}},
		{"han_solo", "corellia", "born_on", map[string]string{"relationship": "homeworld"}},

		// affiliations
		{"luke_skywalker", "jedi_order", "member_of", map[string]string{"relationship": "Jedi Knight"}},
		{"luke_skywalker", "rebel_alliance", "member_of", map[string]string{"relationship": "pilot"}},
		{"darth_vader", "sith", "member_of", map[string]string{"relationship": "Sith Lord"}},
		{"darth_vader", "galactic_empire", "member_of", map[string]string{"relationship": "enforcer"}},
		{"princess_leia", "rebel_alliance", "leader_of", map[string]string{"relationship": "leader"}},
		{"han_solo", "rebel_alliance", "member_of", map[string]string{"relationship": "smuggler"}},
		{"obi_wan_kenobi", "jedi_order", "member_of", map[string]string{"relationship": "Jedi Master"}},
		{"yoda", "jedi_order", "leader_of", map[string]string{"relationship": "Grand Master"}},

		// vehicles
		{"han_solo", "millennium_falcon", "owns", map[string]string{"relationship": "pilot and owner"}},
		{"luke_skywalker", "x_wing", "pilots", map[string]string{"relationship": "pilot"}},
		{"galactic_empire", "death_star", "owns", map[string]string{"relationship": "built and operated"}},

		// events
		{"luke_skywalker", "death_star", "destroyed", map[string]string{"event": "Battle of Yavin"}},
		{"darth_vader", "obi_wan_kenobi", "killed", map[string]string{"event": "Death Star duel"}},

		// locations
		{"yoda", "dagobah", "lived_on", map[string]string{"relationship": "exile location"}},
		{"galactic_empire", "coruscant", "capital_at", map[string]string{"relationship": "seat of power"}},
	}

	relationships := make([]graph.Relationship, 0, len(records))
	for _, rec := range records {
		relationships = append(relationships, graph.Relationship{
			ID:         relationshipID(rec.source, rec.relType, rec.target),
			SourceID:   rec.source,
			TargetID:   rec.target,
			Type:       rec.relType,
			Properties: rec.properties,
		})
	}
	return relationships
}

func relationshipID(source, relType, target string) string {
	return fmt.Sprintf("%s__%s__%s", source, strings.ToLower(relType), target)
}
