package types

// SiteMetadata describes the site itself.
type SiteMetadata struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Tagline     string `json:"tagline" yaml:"tagline"`
	Owner       string `json:"owner" yaml:"owner" validate:"required"`
	BrandAccent string `json:"brand_accent" yaml:"brand_accent" validate:"required,hexcolor"`
}

// Identity is the public-facing biography shown on the page.
type Identity struct {
	Name      string   `json:"name" yaml:"name" validate:"required"`
	BrandName string   `json:"brand_name" yaml:"brand_name"`
	Title     string   `json:"title" yaml:"title"`
	Location  string   `json:"location" yaml:"location"`
	Contact   Contact  `json:"contact" yaml:"contact"`
	Links     Links    `json:"links" yaml:"links"`
	Roles     []string `json:"roles" yaml:"roles"`
	Bio       string   `json:"bio" yaml:"bio"`
}

// Contact holds the owner's contact details.
type Contact struct {
	Email       string `json:"email" yaml:"email" validate:"required,email"`
	Phone       string `json:"phone" yaml:"phone"`
	CalendarURL string `json:"calendar_url" yaml:"calendar_url" validate:"omitempty,url"`
}

// Links holds social and portfolio links.
type Links struct {
	GitHub    string `json:"github" yaml:"github"`
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	Portfolio string `json:"portfolio" yaml:"portfolio"`
}

// Resume holds the structured experience used to build the candidate Profile.
type Resume struct {
	Experience []Experience `json:"experience" yaml:"experience" validate:"dive"`
	Skills     []string     `json:"skills" yaml:"skills"`
}

// HiringStep is one step of the "how to hire" walkthrough.
type HiringStep struct {
	Step    int    `json:"step" yaml:"step"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Icon    string `json:"icon" yaml:"icon"`
}

// Certification is one entry of the credentials gallery.
type Certification struct {
	Title    string `json:"title" yaml:"title" validate:"required"`
	Issuer   string `json:"issuer" yaml:"issuer"`
	Image    string `json:"image" yaml:"image" validate:"omitempty,url"`
	Category string `json:"category" yaml:"category"`
}

// TargetGig is a predefined job description template for the alignment wizard.
type TargetGig struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Description string `json:"description" yaml:"description" validate:"required"`
}

// ExplainerPhase is one fixed phase of the explainer slideshow.
type ExplainerPhase struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	DurationMS  int      `json:"duration_ms" yaml:"duration_ms" validate:"gt=0"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// ToolkitItem is one technology of the toolkit grid.
type ToolkitItem struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Icon     string `json:"icon" yaml:"icon"`
}

// CloudService describes one piece of the site's hosting architecture.
type CloudService struct {
	Service   string `json:"service" yaml:"service"`
	Icon      string `json:"icon" yaml:"icon"`
	Metaphor  string `json:"metaphor" yaml:"metaphor"`
	Narrative string `json:"narrative" yaml:"narrative"`
}

// Competency groups skills under a category.
type Competency struct {
	Category string  `json:"category" yaml:"category"`
	Skills   []Skill `json:"skills" yaml:"skills"`
}

// Skill is one competency with an explanatory detail.
type Skill struct {
	Text   string `json:"text" yaml:"text"`
	Detail string `json:"detail" yaml:"detail"`
}

// Project is a showcased project.
type Project struct {
	ID          int             `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Tech        []string        `json:"tech" yaml:"tech"`
	Outcome     string          `json:"outcome" yaml:"outcome"`
	Featured    bool            `json:"featured" yaml:"featured"`
	Actions     []ProjectAction `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// ProjectAction is a call-to-action attached to a project card.
type ProjectAction struct {
	Label  string `json:"label" yaml:"label"`
	Action string `json:"action" yaml:"action"`
	Target string `json:"target" yaml:"target"`
}

// ArchitectureSpec is one architecture note injected into the chat source of truth.
type ArchitectureSpec struct {
	Tag   string `json:"tag" yaml:"tag"`
	Title string `json:"title" yaml:"title"`
	Logic string `json:"logic" yaml:"logic"`
}

// ReadinessItem is one enterprise readiness pillar.
type ReadinessItem struct {
	Label string `json:"label" yaml:"label"`
	Desc  string `json:"desc" yaml:"desc"`
	Icon  string `json:"icon" yaml:"icon"`
}
