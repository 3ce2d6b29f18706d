// Package content defines the public site content as the client sees
// it. The core only ever needs the IDs; the rest is display data.
package content

// Resource paths on the API, shared by fetches and the admin forms.
const (
	PathNews      = "news"
	PathNotices   = "notices"
	PathTeam      = "team"
	PathHistory   = "history"
	PathEvents    = "events"
	PathGallery   = "gallery"
	PathMenu      = "menu"
	PathSchedules = "schedules"
)

type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
	Date     string `json:"date,omitempty"`
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
}

type GalleryItem struct {
	ID       string `json:"id"`
	Album    string `json:"album"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption,omitempty"`
}

type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

type HistorySection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type MenuFile struct {
	ID      string `json:"id"`
	FileURL string `json:"fileUrl"`
	Label   string `json:"label,omitempty"`
}

type Schedule struct {
	ID      string `json:"id"`
	Class   string `json:"class"`
	FileURL string `json:"fileUrl"`
}

// Content aggregates everything the public site renders. It is fetched
// in one shot and committed to the application state at once.
type Content struct {
	News      []Article        `json:"news"`
	Notices   []Article        `json:"notices"`
	Team      []TeamMember     `json:"team"`
	History   []HistorySection `json:"history"`
	Events    []Event          `json:"events"`
	Gallery   []GalleryItem    `json:"gallery"`
	Menu      []MenuFile       `json:"menu"`
	Schedules []Schedule       `json:"schedules"`
}
