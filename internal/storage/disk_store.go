/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const (
	diskFileSuffix = ".json"
	timeTag        = "$time"
)

// diskPersistence writes every document as one JSON file under basePath,
// laid out as <collection path>/<id>.json.
type diskPersistence struct {
	d *diskv.Diskv
}

// NewDiskStore opens (or creates) a data directory and loads every stored
// document into an in-memory engine that writes through to disk.
func NewDiskStore(basePath string, logger *zap.Logger, opts ...Option) (*InMemoryStore, error) {
	p := &diskPersistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}

	s := NewInMemoryStore(logger, opts...)
	s.logger = logger.Named("disk_store")

	loaded := 0
	for key := range p.d.Keys(nil) {
		path, id := splitKey(key)
		raw, err := p.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		data, err := decodeDocument(raw)
		if err != nil {
			s.logger.Warn("Skipping unreadable document", zap.String("key", key), zap.Error(err))
			continue
		}
		s.collection(path)[id] = data
		loaded++
	}
	s.persist = p
	s.logger.Info("Loaded documents from disk", zap.String("basePath", basePath), zap.Int("count", loaded))
	return s, nil
}

func (p *diskPersistence) save(path Path, id string, data map[string]interface{}) error {
	raw, err := encodeDocument(data)
	if err != nil {
		return err
	}
	return p.d.Write(joinKey(path, id), raw)
}

func (p *diskPersistence) remove(path Path, id string) error {
	return p.d.Erase(joinKey(path, id))
}

func joinKey(path Path, id string) string {
	return strings.Join(append(append([]string(nil), path...), id), "/")
}

func splitKey(key string) (Path, string) {
	parts := strings.Split(key, "/")
	return Path(parts[:len(parts)-1]), parts[len(parts)-1]
}

func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + diskFileSuffix,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, diskFileSuffix)
	return strings.Join(append(append([]string(nil), pathKey.Path...), name), "/")
}

func encodeDocument(data map[string]interface{}) ([]byte, error) {
	return json.Marshal(encodeValue(data))
}

func encodeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return map[string]interface{}{timeTag: t.UTC().Format(time.RFC3339Nano)}
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = encodeValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = encodeValue(e)
		}
		return out
	default:
		return t
	}
}

func decodeDocument(raw []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	out, _ := decodeValue(m).(map[string]interface{})
	return out, nil
}

func decodeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil && !strings.ContainsAny(t.String(), ".eE") {
			return i
		}
		f, _ := t.Float64()
		return f
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = decodeValue(e)
		}
		return out
	case map[string]interface{}:
		if s, ok := t[timeTag].(string); ok && len(t) == 1 {
			if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return ts.UTC()
			}
		}
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = decodeValue(e)
		}
		return out
	default:
		return t
	}
}
