package resource

// NoticeKind — тип уведомления.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice — всплывающее уведомление оператору.
// Text (дословное сообщение backend) имеет приоритет над Key (ключ перевода).
type Notice struct {
	Kind NoticeKind
	Key  string
	Text string
}

// Messages — ключи переводов уведомлений ресурса.
type Messages struct {
	Created          string
	Updated          string
	Deleted          string
	Transitioned     string
	NotFound         string
	LoadFailed       string
	SaveFailed       string
	DeleteFailed     string
	TransitionFailed string
}

// DefaultMessages — общие уведомления, пригодные для любого ресурса.
func DefaultMessages() Messages {
	return Messages{
		Created:          "toast.created",
		Updated:          "toast.updated",
		Deleted:          "toast.deleted",
		Transitioned:     "toast.status_updated",
		NotFound:         "toast.not_found",
		LoadFailed:       "toast.load_failed",
		SaveFailed:       "toast.save_failed",
		DeleteFailed:     "toast.delete_failed",
		TransitionFailed: "toast.status_failed",
	}
}

// withDefaults дополняет пустые ключи общими.
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&m.Created, d.Created)
	fill(&m.Updated, d.Updated)
	fill(&m.Deleted, d.Deleted)
	fill(&m.Transitioned, d.Transitioned)
	fill(&m.NotFound, d.NotFound)
	fill(&m.LoadFailed, d.LoadFailed)
	fill(&m.SaveFailed, d.SaveFailed)
	fill(&m.DeleteFailed, d.DeleteFailed)
	fill(&m.TransitionFailed, d.TransitionFailed)
	return m
}
