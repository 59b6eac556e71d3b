package collector

import (
	"encoding/json"
	"log"

	"github.com/emeraldtransit/railwatch/business/data/rail"
	"github.com/nats-io/nats.go"
)

// snapshotPublisher sends freshly collected current train snapshots over
// nats so live consumers don't have to poll the database.
type snapshotPublisher struct {
	log            *log.Logger
	natsConnection *nats.Conn
	subject        string
}

func makeSnapshotPublisher(log *log.Logger, natsConnection *nats.Conn, subject string) *snapshotPublisher {
	return &snapshotPublisher{
		log:            log,
		natsConnection: natsConnection,
		subject:        subject,
	}
}

// publish sends trains as one json message. Publish failures are logged and
// otherwise ignored, the database remains the source of truth.
func (p *snapshotPublisher) publish(trains []*rail.CurrentTrain) {
	jsonData, err := json.Marshal(trains)
	if err != nil {
		p.log.Printf("failed to marshal current train snapshot for publishing, error:%v", err)
		return
	}
	if err = p.natsConnection.Publish(p.subject, jsonData); err != nil {
		p.log.Printf("failed to publish current train snapshot on %s, error:%v", p.subject, err)
	}
}
