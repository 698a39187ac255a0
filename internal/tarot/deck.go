package tarot

// StyleArchetype is one of the fixed tarot card styles. The whole deck
// is defined at build time; archetypes are only ever persisted by name.
type StyleArchetype struct {
	Name        string
	Description string
}

// Deck holds the major arcana subset used for card generation, in
// canonical order. Changing the deck size reassigns styles for existing
// handles, which is accepted: stability is only guaranteed for the
// lifetime of the catalog.
var Deck = []StyleArchetype{
	{
		Name: "THE_MAGICIAN",
		Description: "Mystical atmosphere with classic Magician symbols: " +
			"wands, pentagrams, magical circles and the infinity sign, in Parasol " +
			"brand colors (mint #81B29A, coral #E07A5F, cream #F4F1DE, navy #3D405B, " +
			"light yellow #F2CC8F). Confident, powerful energy.",
	},
	{
		Name: "THE_HIGH_PRIESTESS",
		Description: "Serene and mysterious atmosphere with moons, pillars, " +
			"veils and pomegranates in Parasol brand colors. Wise, contemplative, " +
			"esoteric knowledge.",
	},
	{
		Name: "THE_EMPRESS",
		Description: "Luxurious and nurturing atmosphere with stars, wheat, " +
			"crowns and floral patterns in Parasol brand colors. Nurturing, " +
			"abundant, creative power.",
	},
	{
		Name: "THE_EMPEROR",
		Description: "Strong and commanding atmosphere with mountains, thrones, " +
			"ram heads and geometric structures in Parasol brand colors. " +
			"Authoritative, structured, worldly power.",
	},
	{
		Name: "THE_STAR",
		Description: "Hopeful and inspiring atmosphere with one large central " +
			"star, smaller stars and water symbols in Parasol brand colors. Serene, " +
			"hopeful, cosmic inspiration.",
	},
	{
		Name: "THE_MOON",
		Description: "Mysterious and intuitive atmosphere with moon phases, " +
			"towers, water and animal symbols in Parasol brand colors. Intuitive, " +
			"hidden knowledge.",
	},
	{
		Name: "THE_SUN",
		Description: "Bright and joyful atmosphere with a large radiating sun, " +
			"sunflowers and warm patterns in Parasol brand colors. Joyful, radiant " +
			"life energy.",
	},
	{
		Name: "THE_WORLD",
		Description: "Complete and fulfilled atmosphere with wreath circles and " +
			"the four element symbols in Parasol brand colors. Universal wisdom, " +
			"completion.",
	},
}

// styleHash computes the classic polynomial string hash with 32-bit
// two's-complement wraparound: h = h*31 + c. The wraparound is
// user-visible (it decides which archetype a handle gets), so the exact
// overflow behavior is kept bit-for-bit.
func styleHash(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

// AssignStyle deterministically maps a handle to an archetype. Callers
// pass the normalized handle so the same public handle always resolves
// to the same style regardless of input casing. Never fails: the empty
// string hashes to 0 and gets the first archetype.
func AssignStyle(handle string) StyleArchetype {
	// abs via int64: |math.MinInt32| does not fit in int32.
	h := int64(styleHash(handle))
	if h < 0 {
		h = -h
	}
	return Deck[h%int64(len(Deck))]
}

// StyleByName returns the archetype with the given name, or the first
// deck entry when the name is unknown (old records after a deck edit).
func StyleByName(name string) StyleArchetype {
	for _, s := range Deck {
		if s.Name == name {
			return s
		}
	}
	return Deck[0]
}
