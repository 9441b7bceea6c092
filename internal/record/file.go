package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// FileStore — хранилище записей в одном JSON-файле вида {ключ: значение}.
// Используется по умолчанию и воспроизводит исходный плоский формат данных.
// Запись выполняется атомарно: сначала во временный файл, затем os.Rename,
// поэтому прерванная запись не повреждает прежний снимок.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]json.RawMessage
}

// NewFileStore открывает хранилище по указанному пути. Отсутствующий файл
// означает пустое хранилище и создаётся при первой записи.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
	}

	return s, nil
}

// Read возвращает значение по ключу из снимка в памяти.
func (s *FileStore) Read(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Write заменяет значение ключа и сразу сбрасывает весь снимок на диск.
func (s *FileStore) Write(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("write %q: value is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = json.RawMessage(append([]byte(nil), value...))
	return s.flush()
}

// Remove удаляет запись; отсутствие ключа не является ошибкой.
func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flush()
}

// Close ничего не освобождает: снимок уже на диске после каждой записи.
func (s *FileStore) Close() error { return nil }

// flush сериализует снимок во временный файл и атомарно заменяет основной.
// Вызывается только под мьютексом.
func (s *FileStore) flush() error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.entries); err != nil {
		f.Close()
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
