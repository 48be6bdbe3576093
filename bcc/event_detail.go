/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

// EventDetail is vended by <api>/event/<eventId>.
type EventDetail struct {
	EventID     int       `json:"eventId"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	DateDisplay string    `json:"dateDisplay"`
	Sections    []string  `json:"sections"`
	EventFormat string    `json:"eventFormat"`
	TimeControl string    `json:"timeControl"`
	RoundTimes  string    `json:"roundTimes"`
	NumEntries  int       `json:"numEntries"`
	Entries     []Entry   `json:"entries"`
}

// Entry is one registration for an event.
type Entry struct {
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	UscfID           int       `json:"uscfId"`
	ChessTitle       string    `json:"chessTitle"`
	SectionName      string    `json:"sectionName"`
	RegistrationDate time.Time `json:"registrationDate"`
	ByeRequests      string    `json:"byeRequests"`
	PrimaryRating    string    `json:"primaryRating"`
	SecondaryRating  string    `json:"secondaryRating"`
}

// GetEventDetail fetches an event and its registrations.
func (c *Client) GetEventDetail(ctx context.Context,
	eventId int64) (*EventDetail, error) {

	var detail EventDetail
	url := fmt.Sprintf("%v/event/%d", c.apiBase, eventId)
	if err := c.getJSON(ctx, url, &detail); err != nil {
		return nil, fmt.Errorf("unable to fetch bcc event detail: %w", err)
	}

	return &detail, nil
}

// UnmarshalJSON accepts any date layout the API has been seen to vend.
func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type alias EventDetail
	aux := &struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		*alias
	}{
		alias: (*alias)(ed),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}

	var err error
	if ed.StartDate, err = internal.ParseDateOrZero(aux.StartDate); err != nil {
		return fmt.Errorf("parsing EventDetail.StartDate: %w", err)
	}
	if ed.EndDate, err = internal.ParseDateOrZero(aux.EndDate); err != nil {
		return fmt.Errorf("parsing EventDetail.EndDate: %w", err)
	}

	return nil
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	type alias Entry
	aux := &struct {
		RegistrationDate string `json:"registrationDate"`
		*alias
	}{
		alias: (*alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return fmt.Errorf("Entry unmarshal: %w", err)
	}

	var err error
	if e.RegistrationDate, err = internal.ParseDateOrZero(aux.RegistrationDate); err != nil {
		return fmt.Errorf("parsing Entry.RegistrationDate: %w", err)
	}

	return nil
}
