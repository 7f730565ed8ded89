// sports.go — спортивные сущности: соревнования, команды, игроки, матчи,
// операторы и журнал событий.
package model

import (
	"strings"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

// isoLayout — формат startTime, совместимый с Date.toISOString().
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// --- Соревнование ---

// Competition — соревнование (лига, кубок, турнир).
type Competition struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ShortName string          `json:"shortName"`
	LogoURL   string          `json:"logoUrl"`
	Country   string          `json:"country"`
	Season    LooseString     `json:"season"`
	Type      CompetitionType `json:"type"`
}

// CompetitionDraft — редактируемая копия соревнования.
type CompetitionDraft struct {
	Name      string
	ShortName string
	Country   string
	Season    string
	Type      CompetitionType
	// LogoURL — уже сохранённый путь логотипа.
	LogoURL string
	// Logo — выбранный, но ещё не загруженный файл.
	Logo *File
}

// CompetitionPayload — тело create/update соревнования.
type CompetitionPayload struct {
	Name      string          `json:"name"`
	ShortName string          `json:"shortName,omitempty"`
	Country   string          `json:"country"`
	Season    string          `json:"season"`
	Type      CompetitionType `json:"type"`
	LogoURL   string          `json:"logoUrl"`
}

// NewCompetitionDraft — значения формы создания.
func NewCompetitionDraft() CompetitionDraft {
	return CompetitionDraft{Type: CompetitionFootball}
}

// Draft копирует редактируемые поля в черновик.
func (c Competition) Draft() CompetitionDraft {
	d := CompetitionDraft{
		Name:      c.Name,
		ShortName: c.ShortName,
		Country:   c.Country,
		Season:    c.Season.String(),
		Type:      c.Type,
		LogoURL:   c.LogoURL,
	}
	if d.Type == "" {
		d.Type = CompetitionFootball
	}
	return d
}

// Payload формирует тело запроса.
func (d CompetitionDraft) Payload() CompetitionPayload {
	return CompetitionPayload{
		Name:      d.Name,
		ShortName: d.ShortName,
		Country:   d.Country,
		Season:    d.Season,
		Type:      d.Type,
		LogoURL:   d.LogoURL,
	}
}

// CompetitionRef — соревнование, присоединённое backend к матчу.
type CompetitionRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// --- Команда и игроки ---

// DefaultTeamColor — основной цвет новой команды.
const DefaultTeamColor = "#1E3A8A"

// Team — команда со списком игроков (includePlayers=true).
type Team struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ShortName    string       `json:"shortName"`
	Category     TeamCategory `json:"category"`
	LogoURL      string       `json:"logoUrl"`
	PrimaryColor string       `json:"primaryColor"`
	Country      string       `json:"country"`
	City         string       `json:"city"`
	Stadium      string       `json:"stadium"`
	Coach        string       `json:"coach"`
	Founded      LooseString  `json:"founded"`
	Players      []Player     `json:"players"`
}

// TeamDraft — редактируемая копия команды.
type TeamDraft struct {
	Name         string
	ShortName    string
	Category     TeamCategory
	PrimaryColor string
	Country      string
	City         string
	Stadium      string
	Coach        string
	Founded      string
	LogoURL      string
	Logo         *File
	// RemoveLogo — очистить логотип, если новый файл не выбран.
	RemoveLogo bool
}

// TeamPayload — тело create/update команды.
type TeamPayload struct {
	Name         string       `json:"name"`
	ShortName    string       `json:"shortName"`
	Category     TeamCategory `json:"category"`
	LogoURL      string       `json:"logoUrl"`
	PrimaryColor string       `json:"primaryColor"`
	Country      string       `json:"country"`
	City         string       `json:"city"`
	Stadium      string       `json:"stadium"`
	Coach        string       `json:"coach"`
	Founded      string       `json:"founded"`
}

// NewTeamDraft — значения формы создания.
func NewTeamDraft() TeamDraft {
	return TeamDraft{Category: TeamFootball, PrimaryColor: DefaultTeamColor}
}

// Draft копирует редактируемые поля в черновик.
func (t Team) Draft() TeamDraft {
	d := TeamDraft{
		Name:         t.Name,
		ShortName:    t.ShortName,
		Category:     t.Category,
		PrimaryColor: t.PrimaryColor,
		Country:      t.Country,
		City:         t.City,
		Stadium:      t.Stadium,
		Coach:        t.Coach,
		Founded:      t.Founded.String(),
		LogoURL:      t.LogoURL,
	}
	if d.Category == "" {
		d.Category = TeamFootball
	}
	if d.PrimaryColor == "" {
		d.PrimaryColor = DefaultTeamColor
	}
	return d
}

// Payload формирует тело запроса. Год основания уходит строкой как введён,
// пустая строка очищает поле на backend.
func (d TeamDraft) Payload() TeamPayload {
	p := TeamPayload{
		Name:         d.Name,
		ShortName:    d.ShortName,
		Category:     d.Category,
		LogoURL:      d.LogoURL,
		PrimaryColor: d.PrimaryColor,
		Country:      d.Country,
		City:         d.City,
		Stadium:      d.Stadium,
		Coach:        d.Coach,
		Founded:      strings.TrimSpace(d.Founded),
	}
	if d.RemoveLogo && d.Logo.Empty() {
		p.LogoURL = ""
	}
	return p
}

// Player — игрок команды.
type Player struct {
	ID          string         `json:"id"`
	TeamID      string         `json:"teamId"`
	Name        string         `json:"name"`
	ShirtNumber int            `json:"shirtNumber"`
	Position    PlayerPosition `json:"position"`
	ImageURL    string         `json:"imageUrl"`
	Nationality string         `json:"nationality"`
}

// PlayerDraft — редактируемая копия игрока. TeamID задаёт владельца.
type PlayerDraft struct {
	TeamID      string
	Name        string
	ShirtNumber int
	Position    PlayerPosition
	ImageURL    string
	Nationality string
}

// PlayerPayload — тело addPlayer/updatePlayer.
type PlayerPayload struct {
	Name        string         `json:"name"`
	ShirtNumber int            `json:"shirtNumber"`
	Position    PlayerPosition `json:"position"`
	ImageURL    string         `json:"imageUrl"`
	Nationality string         `json:"nationality"`
}

// NewPlayerDraft — значения формы добавления игрока в команду teamID.
func NewPlayerDraft(teamID string) PlayerDraft {
	return PlayerDraft{TeamID: teamID, Position: PositionForward}
}

// Draft копирует редактируемые поля в черновик.
func (p Player) Draft() PlayerDraft {
	d := PlayerDraft{
		TeamID:      p.TeamID,
		Name:        p.Name,
		ShirtNumber: p.ShirtNumber,
		Position:    p.Position,
		ImageURL:    p.ImageURL,
		Nationality: p.Nationality,
	}
	if d.Position == "" {
		d.Position = PositionForward
	}
	return d
}

// Payload формирует тело запроса.
func (d PlayerDraft) Payload() PlayerPayload {
	return PlayerPayload{
		Name:        d.Name,
		ShirtNumber: d.ShirtNumber,
		Position:    d.Position,
		ImageURL:    d.ImageURL,
		Nationality: d.Nationality,
	}
}

// TeamRef — команда, присоединённая backend к матчу или событию.
type TeamRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// NameOr возвращает имя команды или fallback для отсутствующей ссылки.
func (t *TeamRef) NameOr(fallback string) string {
	if t == nil || t.Name == "" {
		return fallback
	}
	return t.Name
}

// --- Матч ---

// Match — матч. HomeTeam/AwayTeam/Competition заполняет backend, обратно не отправляются.
type Match struct {
	ID            string          `json:"id"`
	CompetitionID string          `json:"competitionId"`
	HomeTeamID    string          `json:"homeTeamId"`
	AwayTeamID    string          `json:"awayTeamId"`
	StartTime     *time.Time      `json:"startTime"`
	Venue         string          `json:"venue"`
	IsFeatured    bool            `json:"isFeatured"`
	Referee       string          `json:"referee"`
	Matchday      LooseString     `json:"matchday"`
	Season        LooseString     `json:"season"`
	Status        MatchStatus     `json:"status"`
	HomeScore     int             `json:"homeScore"`
	AwayScore     int             `json:"awayScore"`
	HomeTeam      *TeamRef        `json:"homeTeam,omitempty"`
	AwayTeam      *TeamRef        `json:"awayTeam,omitempty"`
	Competition   *CompetitionRef `json:"competition,omitempty"`
}

// MatchDraft — редактируемая копия матча; время начала в 12-часовом виде.
type MatchDraft struct {
	CompetitionID string
	HomeTeamID    string
	AwayTeamID    string
	Slot          schedule.Slot
	Venue         string
	IsFeatured    bool
	Referee       string
	Matchday      string
	Season        string
	// OperatorID — назначаемый оператор, отправляется только при создании.
	OperatorID string
}

// MatchPayload — тело create/update матча. Пустые необязательные поля опускаются.
type MatchPayload struct {
	CompetitionID string `json:"competitionId"`
	HomeTeamID    string `json:"homeTeamId"`
	AwayTeamID    string `json:"awayTeamId"`
	StartTime     string `json:"startTime"`
	Venue         string `json:"venue,omitempty"`
	IsFeatured    bool   `json:"isFeatured"`
	Referee       string `json:"referee,omitempty"`
	Matchday      string `json:"matchday,omitempty"`
	Season        string `json:"season,omitempty"`
	OperatorID    string `json:"operatorId,omitempty"`
}

// MatchStatusPayload — тело updateStatus матча.
type MatchStatusPayload struct {
	Status MatchStatus `json:"status"`
}

// NewMatchDraft — значения формы создания (06:00 م, без даты).
func NewMatchDraft() MatchDraft {
	return MatchDraft{Slot: schedule.DefaultSlot()}
}

// Draft раскладывает матч в черновик в часовом поясе loc.
// Оператор при редактировании не переназначается.
func (m Match) Draft(loc *time.Location) MatchDraft {
	d := MatchDraft{
		CompetitionID: m.CompetitionID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		Slot:          schedule.DefaultSlot(),
		Venue:         m.Venue,
		IsFeatured:    m.IsFeatured,
		Referee:       m.Referee,
		Matchday:      m.Matchday.String(),
		Season:        m.Season.String(),
	}
	if m.StartTime != nil && !m.StartTime.IsZero() {
		d.Slot = schedule.Decompose(*m.StartTime, loc)
	}
	return d
}

// Payload собирает тело запроса. creating — создаётся новый матч
// (только тогда передаётся operatorId). Ошибка schedule.ErrNoDate
// означает, что сохранять нельзя.
func (d MatchDraft) Payload(loc *time.Location, creating bool) (MatchPayload, error) {
	start, err := schedule.Compose(d.Slot, loc)
	if err != nil {
		return MatchPayload{}, err
	}

	p := MatchPayload{
		CompetitionID: d.CompetitionID,
		HomeTeamID:    d.HomeTeamID,
		AwayTeamID:    d.AwayTeamID,
		StartTime:     start.UTC().Format(isoLayout),
		Venue:         d.Venue,
		IsFeatured:    d.IsFeatured,
		Referee:       d.Referee,
		Matchday:      d.Matchday,
		Season:        d.Season,
	}
	if creating {
		p.OperatorID = d.OperatorID
	}
	return p, nil
}

// Title — «Хозяева vs Гости» для таблиц.
func (m Match) Title() string {
	return m.HomeTeam.NameOr("?") + " vs " + m.AwayTeam.NameOr("?")
}

// --- Оператор ---

// Operator — оператор, ведущий матчи в реальном времени.
type Operator struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	OperatorMatches []MatchID `json:"operatorMatches"`
}

// MatchID — элемент списка назначенных матчей оператора.
type MatchID struct {
	ID      string `json:"id"`
	MatchID string `json:"matchId"`
}

// MatchCount — количество назначенных матчей.
func (o Operator) MatchCount() int {
	return len(o.OperatorMatches)
}

// OperatorDraft — форма создания оператора (редактирование не поддерживается).
type OperatorDraft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Журнал событий ---

// EventLog — запись журнала событий матчей.
type EventLog struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Minute    int         `json:"minute"`
	Match     *EventMatch `json:"match,omitempty"`
	Player    *NamedRef   `json:"player,omitempty"`
	CreatedBy *NamedRef   `json:"createdBy,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
}

// EventMatch — матч события с присоединёнными командами.
type EventMatch struct {
	HomeTeam *TeamRef `json:"homeTeam,omitempty"`
	AwayTeam *TeamRef `json:"awayTeam,omitempty"`
}

// NamedRef — любая присоединённая сущность, у которой показывается только имя.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MatchTitle — подпись матча события или "-".
func (e EventLog) MatchTitle() string {
	if e.Match == nil {
		return "-"
	}
	return e.Match.HomeTeam.NameOr("?") + " vs " + e.Match.AwayTeam.NameOr("?")
}
