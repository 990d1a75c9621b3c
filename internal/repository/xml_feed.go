package repository

import (
	"fmt"
	"os"
	"strings"

	"github.com/Dan9191/customer360/internal/models"
	"github.com/beevik/etree"
)

// loadXMLEvents reads an XML events feed from disk
func (s *FileStore) loadXMLEvents(path string) ([]models.CommunicationEvent, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Warnf("Data file not found: %s", path)
		return []models.CommunicationEvent{}, nil
	}
	if err != nil {
		return []models.CommunicationEvent{}, loadError(path, err)
	}
	return s.decodeXMLEvents(path, data)
}

// decodeXMLEvents parses a feed of the form
//
//	<communications>
//	  <event id="C1"><customer_id>CUST1</customer_id><channel>SMS</channel>...</event>
//	</communications>
//
// Child element names match the JSON record keys.
func (s *FileStore) decodeXMLEvents(source string, data []byte) ([]models.CommunicationEvent, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return []models.CommunicationEvent{}, loadError(source, fmt.Errorf("failed to parse XML: %w", err))
	}
	if doc.Root() == nil {
		return []models.CommunicationEvent{}, loadError(source, fmt.Errorf("empty XML document"))
	}

	elements := doc.FindElements("//event")
	events := make([]models.CommunicationEvent, 0, len(elements))
	for i, el := range elements {
		raw, err := rawEventFromXML(el)
		if err != nil {
			s.log.Warnf("Skipping malformed event #%d in %s: %v", i, source, err)
			continue
		}
		events = append(events, raw.toEvent(s.loc))
	}
	s.log.Debugf("Loaded %d events from XML feed %s", len(events), source)
	return events, nil
}

func rawEventFromXML(el *etree.Element) (rawEvent, error) {
	fields := make(map[string]string)
	for _, attr := range el.Attr {
		fields[attr.Key] = attr.Value
	}
	for _, child := range el.ChildElements() {
		fields[child.Tag] = child.Text()
	}

	raw := rawEvent{
		ID:            flexString(fields["id"]),
		CustomerID:    flexString(fields["customer_id"]),
		LAN:           flexString(fields["lan"]),
		Channel:       fields["channel"],
		Type:          fields["type"],
		Status:        fields["status"],
		Datetime:      fields["datetime"],
		Escalated:     parseBool(fields["escalated"]),
		Resolved:      parseBool(fields["resolved"]),
		Message:       fields["message"],
		Template:      fields["template"],
		SentTime:      fields["sent_time"],
		DeliveredTime: fields["delivered_time"],
	}
	if issue, ok := fields["issue_type"]; ok && strings.TrimSpace(issue) != "" {
		raw.IssueType = &issue
	}

	var err error
	if raw.ResolutionTimeSeconds, err = parseOptionalFloat(fields["resolution_time_seconds"]); err != nil {
		return rawEvent{}, fmt.Errorf("invalid resolution_time_seconds: %w", err)
	}
	if raw.CSATScore, err = parseOptionalFloat(fields["csat_score"]); err != nil {
		return rawEvent{}, fmt.Errorf("invalid csat_score: %w", err)
	}
	return raw, nil
}
