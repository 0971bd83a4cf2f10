package clawlaunch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KWriter{
		w: w,
	}, nil
}

func (kw *KWriter) Write(key string, body []byte) error {
	return kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Key:   []byte(key),
			Value: body,
		},
	)
}

func (kw *KWriter) Close() {
	kw.w.Close()
}

// publishLaunchEvent is best-effort; event loss never blocks or fails a
// launch.
func (s *ClawLaunch) publishLaunchEvent(rec schema.LaunchRecord) {
	if s.launchKW == nil {
		return
	}
	evt := schema.LaunchEvent{
		EventID:      uuid.NewString(),
		TweetID:      rec.TweetID,
		Symbol:       rec.Symbol,
		Wallet:       rec.Wallet,
		Status:       rec.Status,
		TokenAddress: rec.TokenAddress,
		TxHash:       rec.TxHash,
		ErrMsg:       rec.ErrMsg,
		Timestamp:    time.Now().Unix(),
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.launchKW.Write(rec.TweetID, body); err != nil {
		log.Warn("publish launch event failed", "tweetId", rec.TweetID, "err", err)
	}
}
