package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/store"
	"go.etcd.io/bbolt"
)

const daysBucket = "days"

// Bolt хранит весь набор памятных дней в одном бакете (const daysBucket).
// По ключу /<n> хранится JSON одного события, где n - позиция события в наборе, дополненная нулями до 6 знаков.
// Ключи в bolt отсортированы, поэтому обход курсором возвращает события в исходном порядке.
//
// Набор целиком заменяется при каждой синхронизации, поэтому PutEvents пересоздает бакет в одной транзакции.
type Bolt struct {
	db *bbolt.DB
}

func NewBolt(file string) (*Bolt, error) {
	b, err := bbolt.Open(file, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cannot open bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt opened %s successfully", file)

	return &Bolt{
		db: b,
	}, nil
}

func (b *Bolt) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("cannot close bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt closed successfully")
	return nil
}

func (b *Bolt) FindMonth(mon time.Month) (store.Events, bool) {
	events, ok := b.FindEvents()
	if !ok {
		return nil, false
	}
	return filterMonth(events, mon)
}

func (b *Bolt) FindEvents() (events store.Events, ok bool) {
	_ = b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(daysBucket))
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			log.Printf("[DEBUG] store/bolt cursor is at key=%s len=%d", k, len(v))

			var ev store.Event
			if err := json.Unmarshal(v, &ev); err != nil {
				log.Printf("[WARN] bolt: invalid event at %s: %v", k, err)
				continue
			}
			events = append(events, ev)
		}

		ok = len(events) > 0
		return nil
	})
	return
}

func (b *Bolt) PutEvents(events store.Events) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(daysBucket)) != nil {
			if err := tx.DeleteBucket([]byte(daysBucket)); err != nil {
				return fmt.Errorf("bolt cannot delete bucket '%s': %v", daysBucket, err)
			}
		}

		bucket, err := tx.CreateBucket([]byte(daysBucket))
		if err != nil {
			return fmt.Errorf("bolt cannot create bucket '%s': %v", daysBucket, err)
		}

		for i, ev := range events {
			key := []byte(fmt.Sprintf("/%06d", i))

			val, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("bolt cannot marshal %s: %v", key, err)
			}

			log.Printf("[DEBUG] store/bolt put key=%s len=%d", key, len(val))
			if err := bucket.Put(key, val); err != nil {
				return fmt.Errorf("bolt cannot put %s: %v", key, err)
			}
		}
		return nil
	})
}

func (b *Bolt) Backup(w io.Writer) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		log.Printf("[DEBUG] store/bolt writing backup len=%d", tx.Size())
		_, err := tx.WriteTo(w)
		return err
	})
}
