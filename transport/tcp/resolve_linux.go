//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

package tcp

import (
	"net"

	"github.com/nikandfor/errors"
	"golang.org/x/sys/unix"
)

// Candidate is one local address the listener may try to bind.
type Candidate struct {
	Family   int // unix.AF_INET or unix.AF_INET6
	Sockaddr unix.Sockaddr
}

// Resolver produces bind candidates for a service port, in the order they
// should be tried.
type Resolver interface {
	Resolve(port string) ([]Candidate, error)
}

// PassiveResolver yields the wildcard address of every family, IPv4 first,
// which is the order getaddrinfo returns for a passive AF_UNSPEC lookup.
type PassiveResolver struct{}

// Resolve accepts a numeric port or a service name such as "http".
func (PassiveResolver) Resolve(port string) ([]Candidate, error) {
	p, err := net.LookupPort("tcp", port)
	if err != nil {
		return nil, errors.Wrap(err, "lookup port %q", port)
	}

	return []Candidate{
		{Family: unix.AF_INET, Sockaddr: &unix.SockaddrInet4{Port: p}},
		{Family: unix.AF_INET6, Sockaddr: &unix.SockaddrInet6{Port: p}},
	}, nil
}

// StaticResolver returns fixed candidates. The Port of each sockaddr is left
// as given.
type StaticResolver []Candidate

func (s StaticResolver) Resolve(string) ([]Candidate, error) {
	if len(s) == 0 {
		return nil, errors.New("no candidates")
	}
	return s, nil
}
