package services

import "sync"

// MatchLockRegistry выдаёт мьютекс на каждый матч. Запись на матч и
// жеребьёвка сериализуются по одному матчу, не блокируя остальные.
//
// Мьютексы из карты не вычищаются: удаление гонялось бы с горутинами,
// уже получившими ссылку на мьютекс, а цена — десятки байт на матч за
// время жизни процесса.
type MatchLockRegistry struct {
	locks sync.Map // matchID -> *sync.Mutex
}

func NewMatchLockRegistry() *MatchLockRegistry {
	return &MatchLockRegistry{}
}

func (r *MatchLockRegistry) Lock(matchID int) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(matchID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}
