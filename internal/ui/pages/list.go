package pages

import "github.com/ahmad115kobane-wq/adminapp/internal/resource"

// List — данные страницы списка с модальной формой.
type List[T, D any] struct {
	Chrome
	// View — снимок контроллера страницы.
	View resource.View[T, D]
	// Items — записи после клиентского поиска.
	Items []T
	// Query — строка поиска (?q=).
	Query string
	// ConfirmID — запись, для которой открыто подтверждение удаления.
	ConfirmID string
}

// Creating сообщает, открыта ли форма создания.
func (l List[T, D]) Creating() bool { return l.View.Modal == resource.ModalCreating }

// ModalOpen сообщает, открыта ли модальная форма.
func (l List[T, D]) ModalOpen() bool { return l.View.Modal != resource.ModalClosed }

// formTitle выбирает заголовок модального окна.
func formTitle(creating bool, createKey, editKey string) string {
	if creating {
		return createKey
	}
	return editKey
}
