package s3client

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"text2phenotype.com/tbl/logger"
)

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

type EnvironmentConfig struct {
	BucketName  string `envconfig:"MDL_COMN_STORAGE_CONTAINER_NAME" required:"true"`
	T2PEnv      string `envconfig:"T2P_ENV" required:"true"`
	Region      string `envconfig:"MDL_COMN_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"MDL_COMN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"MDL_COMN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"MDL_COMN_AWS_ACCESS_KEY" default:""`
}

// Client downloads corpus files and uploads training artifacts. The
// underlying session is lazily refreshed after a failed call, since STS
// credentials on EC2 expire mid-run during long trainings.
type Client struct {
	bucketName string
	region     string
	env        EnvironmentConfig

	mu   sync.Mutex
	sess *session.Session
}

func New() (*Client, error) {
	var env EnvironmentConfig
	if err := envconfig.Process("", &env); err != nil {
		clientLogger.Err(err).Msg("Got error while processing environment")
		return nil, err
	}

	client := &Client{
		bucketName: env.BucketName,
		region:     env.Region,
		env:        env,
	}
	if err := client.refreshSession(); err != nil {
		return nil, err
	}
	return client, nil
}

func (client *Client) Upload(data string, key string) error {
	do := func(sess *session.Session) error {
		uploader := s3manager.NewUploader(sess.Copy(&aws.Config{Logger: newSDKLogger(key, client.bucketName)}))
		_, err := uploader.Upload(&s3manager.UploadInput{
			Bucket: &client.bucketName,
			Key:    &key,
			Body:   strings.NewReader(data),
		})
		return err
	}
	return client.withRetry(key, do)
}

func (client *Client) Download(key string) ([]byte, error) {
	var buf *aws.WriteAtBuffer
	do := func(sess *session.Session) error {
		downloader := s3manager.NewDownloader(sess.Copy(&aws.Config{Logger: newSDKLogger(key, client.bucketName)}))
		buf = aws.NewWriteAtBuffer([]byte{})
		_, err := downloader.Download(buf, &s3.GetObjectInput{
			Bucket: &client.bucketName,
			Key:    &key,
		})
		return err
	}
	if err := client.withRetry(key, do); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (client *Client) Close() {}

// withRetry runs the call once, and once more on a fresh session if it
// failed.
func (client *Client) withRetry(key string, do func(sess *session.Session) error) error {
	err := do(client.session())
	if err == nil {
		return nil
	}
	clientLogger.Err(err).Str("key", key).Msg("S3 call failed, refreshing session and retrying")
	if refreshErr := client.refreshSession(); refreshErr != nil {
		return fmt.Errorf("refresh after %v: %w", err, refreshErr)
	}
	return do(client.session())
}

func (client *Client) session() *session.Session {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.sess
}

func (client *Client) refreshSession() error {
	client.mu.Lock()
	defer client.mu.Unlock()

	sess, err := session.NewSession(client.createEC2Config())
	if err == nil {
		if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err == nil {
			client.sess = sess
			clientLogger.Info().Msg("S3 session initialized using EC2")
			return nil
		}
	}

	clientLogger.Info().Msg("Could not initialize S3 session using EC2, trying env credentials")
	envCfg, err := client.createEnvConfig()
	if err != nil {
		client.sess = nil
		return err
	}
	sess, err = session.NewSession(envCfg)
	if err != nil {
		client.sess = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return err
	}
	if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err != nil {
		client.sess = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return errors.New("could not initialize S3 session")
	}
	client.sess = sess
	clientLogger.Info().Msg("S3 session initialized using env credentials")
	return nil
}

func (client *Client) createEC2Config() *aws.Config {
	return &aws.Config{
		Region:     aws.String(client.region),
		MaxRetries: aws.Int(4),
		LogLevel:   aws.LogLevel(aws.LogDebug),
	}
}

func (client *Client) createEnvConfig() (*aws.Config, error) {
	creds := credentials.NewStaticCredentials(
		client.env.AccessKeyID,
		client.env.AccessKey,
		"")
	if _, err := creds.Get(); err != nil {
		clientLogger.Error().Err(err).Msg("Error with credentials from environment")
		return nil, err
	}

	cfg := aws.NewConfig().
		WithRegion(client.region).
		WithMaxRetries(4).
		WithCredentials(creds).
		WithLogLevel(aws.LogDebug)

	inDevEnv := client.env.T2PEnv == "dev"
	if inDevEnv && len(client.env.AwsEndpoint) > 0 {
		cfg = cfg.WithEndpoint(client.env.AwsEndpoint).
			WithS3ForcePathStyle(true)
	}
	return cfg, nil
}

type s3Logger struct {
	brlLogger zerolog.Logger
}

func newSDKLogger(key, bucket string) *s3Logger {
	return &s3Logger{
		brlLogger: sdkLogger.With().Str("key", key).Str("bucket", bucket).Logger(),
	}
}

func (logger *s3Logger) Log(v ...interface{}) {
	logger.brlLogger.Debug().Msg(fmt.Sprint(v...))
}
