package mqtt

import paho "github.com/eclipse/paho.mqtt.golang"

func NewSimpleClientWith(client paho.Client) *SimpleClient {
	return newSimpleClient(client)
}

func (c *SimpleClient) ResubscribeAll(client paho.Client) {
	c.resubscribeAll(client)
}
