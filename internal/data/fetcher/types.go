package fetcher

// Wire types for the combat-log service's v1 REST API. Field names follow
// the service's JSON; only the parts the sync engine consumes are mapped.

// reportPayload is the /report/fights response
type reportPayload struct {
	Title  string         `json:"title"`
	Start  int64          `json:"start"`
	End    int64          `json:"end"`
	Fights []fightPayload `json:"fights"`
}

type fightPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Boss      int    `json:"boss"`
	Kill      *bool  `json:"kill"`
}

// eventsPayload is one page of the /report/events response
type eventsPayload struct {
	Events            []eventPayload `json:"events"`
	Count             int            `json:"count"`
	NextPageTimestamp *int64         `json:"nextPageTimestamp"`
}

type eventPayload struct {
	Timestamp int64           `json:"timestamp"`
	Type      string          `json:"type"`
	Ability   *abilityPayload `json:"ability"`
}

type abilityPayload struct {
	Name string `json:"name"`
	GUID int    `json:"guid"`
	Type int    `json:"type"`
}

// videoPayload is the /videos/{id} metadata response
type videoPayload struct {
	ID          string  `json:"id"`
	DurationSec float64 `json:"duration"`
	PublishedAt string  `json:"publishedAt"`
}
