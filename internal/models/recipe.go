package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeStatus is the moderation state of a recipe.
type RecipeStatus string

const (
	StatusPending  RecipeStatus = "PENDING"
	StatusApproved RecipeStatus = "APPROVED"
	StatusRejected RecipeStatus = "REJECTED"
)

// RecipeStatuses lists every valid status.
var RecipeStatuses = []RecipeStatus{StatusPending, StatusApproved, StatusRejected}

// ParseRecipeStatus parses a status name case-insensitively.
func ParseRecipeStatus(raw string) (RecipeStatus, error) {
	return parseEnum("recipe status", raw, RecipeStatuses)
}

// Difficulty is the optional skill level of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Difficulties lists every valid difficulty.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses an optional difficulty; blank input yields "".
func ParseDifficulty(raw string) (Difficulty, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseEnum("difficulty", raw, Difficulties)
}

// Category is a meal category a recipe may belong to.
type Category string

const (
	CategoryBreakfast  Category = "BREAKFAST"
	CategoryLunch      Category = "LUNCH"
	CategoryDinner     Category = "DINNER"
	CategorySnack      Category = "SNACK"
	CategoryDessert    Category = "DESSERT"
	CategoryAppetizer  Category = "APPETIZER"
	CategoryBeverage   Category = "BEVERAGE"
	CategorySalad      Category = "SALAD"
	CategorySoup       Category = "SOUP"
	CategoryMainCourse Category = "MAIN_COURSE"
	CategorySideDish   Category = "SIDE_DISH"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack, CategoryDessert,
	CategoryAppetizer, CategoryBeverage, CategorySalad, CategorySoup, CategoryMainCourse,
	CategorySideDish,
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	return parseEnum("category", raw, Categories)
}

// ParseCategories parses a list of category names, dropping duplicates.
func ParseCategories(raw []string) ([]Category, error) {
	seen := make(map[Category]struct{}, len(raw))
	out := make([]Category, 0, len(raw))
	for _, r := range raw {
		c, err := ParseCategory(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// NormalizeTag lowercases and trims a free-text dietary tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalizes tags and returns them as a sorted set.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		normalized = append(normalized, NormalizeTag(t))
	}
	return NewStringSet(normalized...)
}

// NutritionInfo holds optional per-serving nutrition facts.
type NutritionInfo struct {
	Calories      *int     `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
	Sodium        *int     `json:"sodium,omitempty"`
}

type Recipe struct {
	ID              uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Title           string             `gorm:"size:100;not null" json:"title"`
	Description     string             `gorm:"type:text;not null" json:"description"`
	Instructions    string             `gorm:"type:text;not null" json:"instructions"`
	PreparationTime int                `gorm:"not null" json:"preparation_time"`
	CookingTime     int                `gorm:"not null" json:"cooking_time"`
	Servings        int                `gorm:"not null" json:"servings"`
	Difficulty      Difficulty         `gorm:"size:10;index" json:"difficulty,omitempty"`
	ImageURL        string             `gorm:"size:255" json:"image_url,omitempty"`
	Status          RecipeStatus       `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	Nutrition       NutritionInfo      `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	AuthorID        uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author          *User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Categories      []RecipeCategory   `gorm:"foreignKey:RecipeID" json:"-"`
	DietaryTags     []RecipeDietaryTag `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredients     []Ingredient       `gorm:"foreignKey:RecipeID" json:"ingredients"`

	// Derived on read.
	AverageRating float64 `gorm:"-" json:"average_rating"`
	TotalRatings  int64   `gorm:"-" json:"total_ratings"`
	FavoriteCount int64   `gorm:"-" json:"favorite_count"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime is preparation plus cooking minutes.
func (r *Recipe) TotalTime() int {
	return r.PreparationTime + r.CookingTime
}

// CategoryList returns the recipe's categories in sorted order.
func (r *Recipe) CategoryList() []Category {
	out := make([]Category, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, c.Category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TagList returns the recipe's dietary tags in sorted order.
func (r *Recipe) TagList() []string {
	out := make([]string, 0, len(r.DietaryTags))
	for _, t := range r.DietaryTags {
		out = append(out, t.Tag)
	}
	sort.Strings(out)
	return out
}

// SetCategories replaces the category links. RecipeID is filled on save.
func (r *Recipe) SetCategories(categories []Category) {
	r.Categories = make([]RecipeCategory, 0, len(categories))
	for _, c := range categories {
		r.Categories = append(r.Categories, RecipeCategory{RecipeID: r.ID, Category: c})
	}
}

// SetDietaryTags replaces the tag links with the normalized tags.
func (r *Recipe) SetDietaryTags(tags []string) {
	normalized := NormalizeTags(tags)
	r.DietaryTags = make([]RecipeDietaryTag, 0, len(normalized))
	for _, t := range normalized {
		r.DietaryTags = append(r.DietaryTags, RecipeDietaryTag{RecipeID: r.ID, Tag: t})
	}
}

// RecipeCategory links a recipe to one of its categories.
type RecipeCategory struct {
	RecipeID uuid.UUID `gorm:"type:varchar(36);primarykey"`
	Category Category  `gorm:"size:20;primarykey;index"`
}

func (RecipeCategory) TableName() string {
	return "recipe_categories"
}

// RecipeDietaryTag links a recipe to one of its dietary tags.
type RecipeDietaryTag struct {
	RecipeID uuid.UUID `gorm:"type:varchar(36);primarykey"`
	Tag      string    `gorm:"size:50;primarykey;index"`
}

func (RecipeDietaryTag) TableName() string {
	return "recipe_dietary_tags"
}
