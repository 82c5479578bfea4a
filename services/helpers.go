package services

import "fmt"

// storeError классифицирует неожиданную ошибку хранилища. Ожидаемые условия
// (not found, конфликты) репозитории возвращают отдельными ошибками, поэтому
// всё остальное — недоступность стора либо дефект схемы.
func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
