package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/egotransfert/auth-api/internal/domain"
)

// TxRepo wraps the multi-step write boundaries that must be all-or-nothing:
// account creation with its first OTP, and OTP consumption with the verified
// flag flip. Both span the users and user_otps tables, so they live here
// rather than in either single-table repo.
type TxRepo struct {
	client   *dynamodb.Client
	users    string
	userOTPs string
}

func NewTxRepo(client *dynamodb.Client, usersTable, otpsTable string) *TxRepo {
	return &TxRepo{client: client, users: usersTable, userOTPs: otpsTable}
}

// CreateUserWithOTP writes the new account and its initial OTP record in one
// transaction, so a failed OTP write cannot leave a partially created account.
func (r *TxRepo) CreateUserWithOTP(ctx context.Context, u *domain.User, rec *domain.OTPRecord) error {
	userItem, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	otpItem, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String(r.users), Item: userItem}},
			{Put: &types.Put{TableName: aws.String(r.userOTPs), Item: otpItem}},
		},
	})
	return err
}

// ConsumeOTPAndVerify deletes exactly the matched OTP record and marks the
// account verified, atomically. Verification is a one-way transition.
func (r *TxRepo) ConsumeOTPAndVerify(ctx context.Context, userID, otpID string) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName: aws.String(r.userOTPs),
				Key:       compositeKey("user_id", userID, "otp_id", otpID),
			}},
			{Update: &types.Update{
				TableName:        aws.String(r.users),
				Key:              strKey("user_id", userID),
				UpdateExpression: aws.String("SET verified = :t, updated_at = :u"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":t": &types.AttributeValueMemberBOOL{Value: true},
					":u": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
				},
			}},
		},
	})
	return err
}
