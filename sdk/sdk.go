// Package sdk is a thin HTTP client for a clawlaunch service.
package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/fomo4claw/clawlaunch/schema"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"
)

type Client struct {
	cli *gentleman.Client

	cronSecret string
}

func New(launchURL string) *Client {
	return &Client{
		cli: gentleman.New().URL(launchURL),
	}
}

// NewWithSecret authorizes the client for the scan endpoint.
func NewWithSecret(launchURL, cronSecret string) *Client {
	c := New(launchURL)
	c.cronSecret = cronSecret
	return c
}

// PrepareLaunch returns the full on-chain payload for the token details
// without submitting anything.
func (c *Client) PrepareLaunch(details schema.LaunchRequest) (res schema.RespPrepareLaunch, err error) {
	req := c.cli.Request().Path("/launch/prepare").Method("POST")
	req.Use(body.JSON(schema.PrepareLaunchReq{TokenDetails: &details}))
	resp, err := req.Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return res, decodeRespErr(resp.Bytes())
	}
	err = json.Unmarshal(resp.Bytes(), &res)
	return
}

// TriggerScan runs one ingestion cycle on the service.
func (c *Client) TriggerScan() (res schema.RespScan, err error) {
	req := c.cli.Request().Path("/launch/scan")
	if c.cronSecret != "" {
		req.SetHeader("Authorization", "Bearer "+c.cronSecret)
	}
	resp, err := req.Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return res, decodeRespErr(resp.Bytes())
	}
	err = json.Unmarshal(resp.Bytes(), &res)
	return
}

func (c *Client) GetLaunch(tweetID string) (rec schema.LaunchRecord, err error) {
	resp, err := c.cli.Request().Path("/launch/" + tweetID).Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return rec, decodeRespErr(resp.Bytes())
	}
	err = json.Unmarshal(resp.Bytes(), &rec)
	return
}

func (c *Client) GetLaunches() (recs []schema.LaunchRecord, err error) {
	resp, err := c.cli.Request().Path("/launches").Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return recs, decodeRespErr(resp.Bytes())
	}
	err = json.Unmarshal(resp.Bytes(), &recs)
	return
}

func (c *Client) GetInfo() (info schema.RespInfo, err error) {
	resp, err := c.cli.Request().Path("/info").Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return info, decodeRespErr(resp.Bytes())
	}
	err = json.Unmarshal(resp.Bytes(), &info)
	return
}

func decodeRespErr(data []byte) error {
	respErr := schema.RespErr{}
	if err := json.Unmarshal(data, &respErr); err != nil || respErr.Err == "" {
		return fmt.Errorf("request failed: %s", string(data))
	}
	return respErr
}
