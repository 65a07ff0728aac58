// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package live streams poll results to websocket subscribers.
//
// Handlers call Serve for GET /polls/{id}/live, Publish after every vote or
// new option, and Close when a poll is deleted. Messages are JSON:
//
//	{"event":"results","revision":4,"data":{"id":1,"question":"Best pet?","options":[...]}}
//	{"event":"deleted"}
package live
