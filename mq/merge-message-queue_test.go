package mq

import (
	"encoding/json"
	"os"
	"testing"

	res1d "github.com/usace/res1d-go-sdk"
)

type captureQueue struct {
	topic   string
	payload []byte
}

func (cq *captureQueue) Send(topic string, payload []byte) error {
	cq.topic = topic
	cq.payload = payload
	return nil
}

func (cq *captureQueue) Subscribe(topic string, f SubscribeFunction) error { return nil }
func (cq *captureQueue) UnSubscribe(topic string) error                    { return nil }

func TestStatusPublisher(t *testing.T) {
	queue := captureQueue{}
	publisher := NewStatusPublisher(&queue, "merges/status")

	report := res1d.StatusReport{
		RunID:    "run-1",
		Status:   res1d.COMPUTING,
		Stage:    res1d.StageMergeEntries,
		Progress: 50,
	}
	if err := publisher.Report(report); err != nil {
		t.Fatalf("Report: %v", err)
	}

	if queue.topic != "merges/status" {
		t.Errorf("topic: got %s", queue.topic)
	}
	var got res1d.StatusReport
	if err := json.Unmarshal(queue.payload, &got); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if got != report {
		t.Errorf("round-tripped report: got %+v, want %+v", got, report)
	}
}

func TestMqttMessageQueue(t *testing.T) {
	serverUri := os.Getenv("RES1D_MQ_SERVER")
	if serverUri == "" {
		t.Skip("message queue broker not configured for testing")
	}
	queue, err := NewMqttMessageQueue("res1d-test", serverUri)
	if err != nil {
		t.Skip("message queue broker not available:", err)
	}
	if err := queue.Send("merges/test", []byte("ping")); err != nil {
		t.Errorf("Send: %v", err)
	}
}
