package server

// Purpose:	Announce the frame-stream websocket over mDNS/DNS-SD so a
//		LAN client doesn't need a hardcoded host:port.
//
// Description:	Line-for-line grounded on the teacher's src/dns_sd.go,
//		which announces its KISS-over-TCP service the same way
//		using the same github.com/brutella/dnssd dependency. We
//		advertise a different service type ("_irmp._tcp" instead
//		of "_kiss-tnc._tcp") for a different payload, but the
//		Config/NewService/NewResponder/Add/Respond call sequence
//		is identical.

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

const serviceType = "_irmp._tcp"

// Advertiser wraps a running dnssd responder so the caller can shut it
// down with the same context it started it with.
type Advertiser struct {
	responder dnssd.Responder
	cancel    context.CancelFunc
}

// Announce starts advertising name (or a default) on port over mDNS.
// The responder runs until the returned Advertiser is stopped.
func Announce(name string, port int) (*Advertiser, error) {
	if name == "" {
		name = "irmp-go"
	}

	cfg := dnssd.Config{
		Name: name,
		Type: serviceType,
		Port: port,
	}

	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("server: mdns: new service: %w", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("server: mdns: new responder: %w", err)
	}

	if _, err := responder.Add(svc); err != nil {
		return nil, fmt.Errorf("server: mdns: add service: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Advertiser{responder: responder, cancel: cancel}

	go func() {
		_ = responder.Respond(ctx)
	}()

	return a, nil
}

// Stop cancels the responder's context, ending the mDNS advertisement.
func (a *Advertiser) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
}
