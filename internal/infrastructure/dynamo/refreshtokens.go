package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/egotransfert/auth-api/internal/domain"
)

// refreshTokenClient is the slice of the DynamoDB API this repo uses.
type refreshTokenClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// RefreshTokenRepo persists issued refresh tokens.
// PK: token; user_id-index GSI supports logout (delete all tokens for a user).
type RefreshTokenRepo struct {
	client    refreshTokenClient
	tableName string
}

func NewRefreshTokenRepo(client *dynamodb.Client, tableName string) *RefreshTokenRepo {
	return &RefreshTokenRepo{client: client, tableName: tableName}
}

func (r *RefreshTokenRepo) Put(ctx context.Context, rt *domain.RefreshToken) error {
	item, err := attributevalue.MarshalMap(rt)
	if err != nil {
		return fmt.Errorf("marshal refresh token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// DeleteByUser removes every refresh token owned by the account, following
// the query pagination so accounts with many tokens are fully cleared.
func (r *RefreshTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	var firstErr error
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("user_id-index"),
			KeyConditionExpression: aws.String("user_id = :uid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": &types.AttributeValueMemberS{Value: userID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return err
		}
		for _, item := range out.Items {
			tokenAttr, ok := item["token"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(r.tableName),
				Key:       strKey("token", tokenAttr.Value),
			}); err != nil {
				slog.Warn("failed to delete refresh token during logout", "user_id", userID, "err", err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		if out.LastEvaluatedKey == nil {
			return firstErr
		}
		startKey = out.LastEvaluatedKey
	}
}
