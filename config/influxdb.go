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

func NewInfluxDB() error {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr: Env.InfluxDB.URL,
	})
	if err != nil {
		return err
	}

	InfluxDB = &InfluxClient{
		client:   c,
		database: Env.InfluxDB.Database,
	}

	return nil
}

func (c *InfluxClient) NewBatchPoints() (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database:  c.database,
		Precision: "ns",
	})
}

// WritePoint writes a single point stamped at t.
func (c *InfluxClient) WritePoint(name string, tags map[string]string, fields map[string]interface{}, t time.Time) error {
	bp, err := c.NewBatchPoints()
	if err != nil {
		return err
	}

	point, err := client.NewPoint(name, tags, fields, t)
	if err != nil {
		return err
	}

	bp.AddPoint(point)

	return c.client.Write(bp)
}

func (c *InfluxClient) Close() error {
	return c.client.Close()
}
