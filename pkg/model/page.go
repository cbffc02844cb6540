package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type PageID string

// NewPageID generates a new unique PageID
func NewPageID() PageID {
	return PageID(uuid.New().String())
}

type Relationship string

const (
	RelationshipPartner Relationship = "partner"
	RelationshipFriend  Relationship = "friend"
	RelationshipSpouse  Relationship = "spouse"
	RelationshipSibling Relationship = "sibling"
	RelationshipParent  Relationship = "parent"
	RelationshipOther   Relationship = "other"
)

// Relationships lists all valid relationship values
func Relationships() []any {
	return []any{
		RelationshipPartner, RelationshipFriend, RelationshipSpouse,
		RelationshipSibling, RelationshipParent, RelationshipOther,
	}
}

type VisualStyle string

const (
	StyleNeon       VisualStyle = "neon"
	StyleSakura     VisualStyle = "sakura"
	StyleCosmic     VisualStyle = "cosmic"
	StyleOcean      VisualStyle = "ocean"
	StyleSunset     VisualStyle = "sunset"
	StyleVintage    VisualStyle = "vintage"
	StyleForest     VisualStyle = "forest"
	StyleGlitch     VisualStyle = "glitch"
	StyleElegant    VisualStyle = "elegant"
	StyleClouds     VisualStyle = "clouds"
	StyleMinimal    VisualStyle = "minimal"
	StylePolaroid   VisualStyle = "polaroid"
	StyleMidnight   VisualStyle = "midnight"
	StyleLoveLetter VisualStyle = "loveletter"
)

// VisualStyles lists all known visual styles
func VisualStyles() []VisualStyle {
	return []VisualStyle{
		StyleNeon, StyleSakura, StyleCosmic, StyleOcean, StyleSunset,
		StyleVintage, StyleForest, StyleGlitch, StyleElegant, StyleClouds,
		StyleMinimal, StylePolaroid, StyleMidnight, StyleLoveLetter,
	}
}

// Known reports whether the style is one of the recognized themes
func (s VisualStyle) Known() bool {
	for _, v := range VisualStyles() {
		if s == v {
			return true
		}
	}
	return false
}

// Memory is one remembered moment shown on the page timeline
type Memory struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
	Location    string `json:"location" yaml:"location"`
	Importance  string `json:"importance" yaml:"importance"`
	Details     string `json:"details" yaml:"details"`
}

// Wish is one wish card; Content is used as the title, Details as the body
type Wish struct {
	ID         string `json:"id" yaml:"id"`
	Content    string `json:"content" yaml:"content"`
	Importance string `json:"importance" yaml:"importance"`
	Details    string `json:"details" yaml:"details"`
}

type Identity struct {
	RecipientName string       `json:"recipientName" yaml:"recipientName"`
	SenderName    string       `json:"senderName" yaml:"senderName"`
	Relationship  Relationship `json:"relationship" yaml:"relationship"`
	Nickname      string       `json:"nickname" yaml:"nickname"`
}

type SpecialItems struct {
	Gifts          string `json:"gifts" yaml:"gifts"`
	InsideJokes    string `json:"insideJokes" yaml:"insideJokes"`
	TreasuredItems string `json:"treasuredItems" yaml:"treasuredItems"`
}

type Personality struct {
	Interests  string `json:"interests" yaml:"interests"`
	Uniqueness string `json:"uniqueness" yaml:"uniqueness"`
	Admiration string `json:"admiration" yaml:"admiration"`
	Dreams     string `json:"dreams" yaml:"dreams"`
}

type Journey struct {
	MeetingStory string `json:"meetingStory" yaml:"meetingStory"`
	Duration     string `json:"duration" yaml:"duration"`
	Milestones   string `json:"milestones" yaml:"milestones"`
	Moments      string `json:"moments" yaml:"moments"`
}

type Design struct {
	PrimaryColor    string      `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor  string      `json:"secondaryColor" yaml:"secondaryColor"`
	EmojiPreference []string    `json:"emojiPreference" yaml:"emojiPreference"`
	VisualStyle     VisualStyle `json:"visualStyle" yaml:"visualStyle"`
}

// Letter is the closing message section of the page
type Letter struct {
	Main    string `json:"main" yaml:"main"`
	SignOff string `json:"signOff" yaml:"signOff"`
	Quote   string `json:"quote" yaml:"quote"`
}

// Page is the fully shaped content record for one celebration page.
// ID and CreatedAt are assigned only when the page is saved; drafts
// carry zero values for both.
type Page struct {
	ID        PageID    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	Basics       Identity     `json:"basics" yaml:"basics"`
	Memories     []Memory     `json:"memories" yaml:"memories"`
	Wishes       []Wish       `json:"wishes" yaml:"wishes"`
	SpecialItems SpecialItems `json:"specialItems" yaml:"specialItems"`
	Personality  Personality  `json:"personality" yaml:"personality"`
	Journey      Journey      `json:"journey" yaml:"journey"`
	Design       Design       `json:"design" yaml:"design"`
	Message      Letter       `json:"message" yaml:"message"`
}

// DefaultPage returns the canonical base shape every normalized page
// starts from. Merge results inherit any field the model left out.
func DefaultPage() *Page {
	return &Page{
		Basics: Identity{
			Relationship: RelationshipPartner,
		},
		Memories: []Memory{},
		Wishes:   []Wish{},
		Design: Design{
			PrimaryColor:    "#ff1493",
			SecondaryColor:  "#ff69b4",
			EmojiPreference: []string{"❤️", "✨", "🎂"},
			VisualStyle:     StyleNeon,
		},
	}
}

// RegenerateItemIDs assigns a fresh unique identifier to every memory
// and wish, discarding whatever identifier was already there. Model
// output is never trusted to produce ids.
func (p *Page) RegenerateItemIDs() {
	for i := range p.Memories {
		p.Memories[i].ID = uuid.New().String()
	}
	for i := range p.Wishes {
		p.Wishes[i].ID = uuid.New().String()
	}
}

// Validate checks the fields required for manual submission. Pages
// produced by the chat flow are saved as-is and skip this check.
func (p *Page) Validate() error {
	if err := validation.ValidateStruct(&p.Basics,
		validation.Field(&p.Basics.RecipientName, validation.Required),
		validation.Field(&p.Basics.SenderName, validation.Required),
		validation.Field(&p.Basics.Relationship, validation.In(Relationships()...)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&p.Design,
		validation.Field(&p.Design.VisualStyle, validation.In(visualStylesAny()...)),
	)
}

func visualStylesAny() []any {
	styles := VisualStyles()
	out := make([]any, 0, len(styles))
	for _, s := range styles {
		out = append(out, s)
	}
	return out
}
