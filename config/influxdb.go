package config

import (
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
)

var InfluxDB *InfluxClient

type InfluxClient struct {
	client   client.Client
	database string
}

func NewInfluxDB(cfg *Env) error {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr: cfg.InfluxDBURL,
	})

	if err != nil {
		return err
	}

	InfluxDB = &InfluxClient{
		client:   c,
		database: cfg.InfluxDBDatabase,
	}

	return nil
}

func (c *InfluxClient) NewBatchPoints() (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database:  c.database,
		Precision: "ns",
	})
}

func (c *InfluxClient) NewPoint(name string, tags map[string]string, fields map[string]interface{}) error {
	bp, err := c.NewBatchPoints()
	if err != nil {
		return err
	}

	point, err := client.NewPoint(name, tags, fields, time.Now())
	if err != nil {
		return err
	}

	bp.AddPoint(point)

	// Write the batch
	return c.client.Write(bp)
}

func (c *InfluxClient) Close() error {
	return c.client.Close()
}
