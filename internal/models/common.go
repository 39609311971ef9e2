// internal/models/common.go
package models

// Enums
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryBags        Category = "bags"
	CategoryJewelry     Category = "jewelry"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear,
		CategoryShoes, CategoryAccessories, CategoryBags, CategoryJewelry:
		return true
	}
	return false
}

type Occasion string

const (
	OccasionCasual   Occasion = "casual"
	OccasionWork     Occasion = "work"
	OccasionFormal   Occasion = "formal"
	OccasionCocktail Occasion = "cocktail"
	OccasionAthletic Occasion = "athletic"
	OccasionBeach    Occasion = "beach"
	OccasionParty    Occasion = "party"
)

func (o Occasion) Valid() bool {
	switch o {
	case OccasionCasual, OccasionWork, OccasionFormal, OccasionCocktail,
		OccasionAthletic, OccasionBeach, OccasionParty:
		return true
	}
	return false
}

type Season string

const (
	SeasonSpring    Season = "spring"
	SeasonSummer    Season = "summer"
	SeasonFall      Season = "fall"
	SeasonWinter    Season = "winter"
	SeasonAllSeason Season = "all_season"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAllSeason:
		return true
	}
	return false
}

type BodyType string

const (
	BodyTypePear             BodyType = "pear"
	BodyTypeApple            BodyType = "apple"
	BodyTypeHourglass        BodyType = "hourglass"
	BodyTypeRectangle        BodyType = "rectangle"
	BodyTypeInvertedTriangle BodyType = "inverted_triangle"
	BodyTypeAthletic         BodyType = "athletic"
)

type StylePersonality string

const (
	StyleClassic    StylePersonality = "classic"
	StyleTrendy     StylePersonality = "trendy"
	StyleBohemian   StylePersonality = "bohemian"
	StyleMinimalist StylePersonality = "minimalist"
	StyleEdgy       StylePersonality = "edgy"
	StyleRomantic   StylePersonality = "romantic"
	StyleSporty     StylePersonality = "sporty"
	StyleGlamorous  StylePersonality = "glamorous"
)

type IntentType string

const (
	IntentGreeting        IntentType = "greeting"
	IntentHelp            IntentType = "help"
	IntentFeedback        IntentType = "feedback"
	IntentRecommendation  IntentType = "recommendation"
	IntentGeneralQuestion IntentType = "general_question"
	IntentUnknown         IntentType = "unknown"
)

type InteractionType string

const (
	InteractionClick       InteractionType = "click"
	InteractionLike        InteractionType = "like"
	InteractionAddToCart   InteractionType = "add_to_cart"
	InteractionViewDetails InteractionType = "view_details"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionClick, InteractionLike, InteractionAddToCart, InteractionViewDetails:
		return true
	}
	return false
}
