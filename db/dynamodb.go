package db

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jsphweid/notesift/model"
)

// DynamoStore keeps history in a DynamoDB table keyed by "PK" (the item id).
// The table is small (see constants.MaxHistoryItems) so reads are full scans.
type DynamoStore struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamoStore(endpoint string, region string, table string) (*DynamoStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return &DynamoStore{client: dynamodb.New(sess), table: table}, nil
}

func notesToAttribute(notes model.Notes) *dynamodb.AttributeValue {
	list := make([]*dynamodb.AttributeValue, 0, len(notes))
	for _, n := range notes {
		list = append(list, &dynamodb.AttributeValue{N: aws.String(strconv.Itoa(n))})
	}
	return &dynamodb.AttributeValue{L: list}
}

func itemToAttributes(item model.HistoryItem) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK":             {S: aws.String(item.ID)},
		"Notes":          notesToAttribute(item.Notes),
		"FormattedNotes": {S: aws.String(item.FormattedNotes)},
		"Response":       {S: aws.String(item.Response)},
		"Timestamp":      {S: aws.String(item.Timestamp)},
	}
}

func attributesToItem(v map[string]*dynamodb.AttributeValue) model.HistoryItem {
	var item model.HistoryItem
	str := func(key string) string {
		if a, ok := v[key]; ok && a.S != nil {
			return *a.S
		}
		return ""
	}
	item.ID = str("PK")
	item.FormattedNotes = str("FormattedNotes")
	item.Response = str("Response")
	item.Timestamp = str("Timestamp")
	item.Notes = model.Notes{}
	if a, ok := v["Notes"]; ok {
		for _, n := range a.L {
			if n.N == nil {
				continue
			}
			num, err := strconv.Atoi(*n.N)
			if err == nil {
				item.Notes = append(item.Notes, num)
			}
		}
	}
	return item
}

func (s *DynamoStore) Insert(ctx context.Context, item model.HistoryItem) error {
	_, err := s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      itemToAttributes(item),
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

// all returns every item, newest first.
func (s *DynamoStore) all(ctx context.Context) ([]model.HistoryItem, error) {
	items := []model.HistoryItem{}
	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
	err := s.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, v := range page.Items {
			items = append(items, attributesToItem(v))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	sortNewestFirst(items)
	return items, nil
}

// sortNewestFirst orders items by timestamp, newest first. Timestamps are
// fixed width UTC, so they sort lexically. Equal timestamps keep scan order.
func sortNewestFirst(items []model.HistoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
}

// splitAt returns the first n items and the rest.
func splitAt(items []model.HistoryItem, n int) (head, rest []model.HistoryItem) {
	if n < 0 {
		n = 0
	}
	if n >= len(items) {
		return items, nil
	}
	return items[:n], items[n:]
}

func (s *DynamoStore) List(ctx context.Context, limit int) ([]model.HistoryItem, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	head, _ := splitAt(items, limit)
	return head, nil
}

func (s *DynamoStore) HasFormatted(ctx context.Context, formattedNotes string) (bool, error) {
	items, err := s.all(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.FormattedNotes == formattedNotes {
			return true, nil
		}
	}
	return false, nil
}

func (s *DynamoStore) deleteItems(ctx context.Context, items []model.HistoryItem) error {
	for _, item := range items {
		_, err := s.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.table),
			Key: map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(item.ID)},
			},
		})
		if err != nil {
			return fmt.Errorf("error from DynamoDB: %w", err)
		}
	}
	return nil
}

func (s *DynamoStore) Trim(ctx context.Context, keep int) error {
	items, err := s.all(ctx)
	if err != nil {
		return err
	}
	_, stale := splitAt(items, keep)
	return s.deleteItems(ctx, stale)
}

func (s *DynamoStore) Clear(ctx context.Context) error {
	items, err := s.all(ctx)
	if err != nil {
		return err
	}
	return s.deleteItems(ctx, items)
}

func (s *DynamoStore) Close() error {
	return nil
}
