package s3

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/olusolaa/flagsync/internal/errors"
)

var authErrorCodes = map[string]bool{
	"AccessDenied":          true,
	"AllAccessDisabled":     true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
}

// handleS3Error maps an upload failure onto the application's error codes.
func handleS3Error(ctx context.Context, bucket, key string, err error) error {
	target := fmt.Sprintf("s3://%s/%s", bucket, key)

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodeReportUploadError, "context canceled while uploading "+target)
	}

	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		switch {
		case authErrorCodes[apiErr.ErrorCode()]:
			return errors.WrapUserFacing(err, errors.CodeReportUploadError,
				fmt.Sprintf("not authorized to upload %s (%s)", target, apiErr.ErrorCode()),
				"Check the AWS credentials in the environment and the bucket policy")
		case apiErr.ErrorCode() == "NoSuchBucket":
			return errors.WrapUserFacing(err, errors.CodeReportUploadError,
				fmt.Sprintf("bucket %q does not exist", bucket),
				"Set report.s3.bucket to an existing bucket")
		}
	}

	return errors.Wrap(err, errors.CodeReportUploadError, "failed to upload "+target)
}
