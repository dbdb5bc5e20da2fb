package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type ImgpipeLabStackProps struct {
	awscdk.StackProps
	SourcePrefix string
	DestPrefix   string
}

// NewImgpipeLabStack は imgpipe process の動作確認用に入力・出力バケットを作成する
func NewImgpipeLabStack(scope constructs.Construct, id string, props *ImgpipeLabStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, &id, &sprops)

	// 1. 入力バケット（demo-images の画像を uploads/ 配下に配置）
	inputBucket := awss3.NewBucket(stack, jsii.String("InputBucket"), &awss3.BucketProps{
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
	})

	awss3deployment.NewBucketDeployment(stack, jsii.String("DeploySampleImages"), &awss3deployment.BucketDeploymentProps{
		Sources: &[]awss3deployment.ISource{
			awss3deployment.Source_Asset(jsii.String("./demo-images"), nil),
		},
		DestinationBucket:    inputBucket,
		DestinationKeyPrefix: jsii.String(props.SourcePrefix),
	})

	// 2. 出力バケット
	outputBucket := awss3.NewBucket(stack, jsii.String("OutputBucket"), &awss3.BucketProps{
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
	})

	// 3. パイプライン実行用のマネージドポリシー
	awsiam.NewManagedPolicy(stack, jsii.String("ImgpipePolicy"), &awsiam.ManagedPolicyProps{
		Statements: &[]awsiam.PolicyStatement{
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions:   &[]*string{jsii.String("s3:ListBucket")},
				Resources: &[]*string{inputBucket.BucketArn()},
			}),
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions: &[]*string{
					jsii.String("s3:GetObject"),
					jsii.String("s3:DeleteObject"), // --delete-source 用
				},
				Resources: &[]*string{inputBucket.ArnForObjects(jsii.String(props.SourcePrefix + "*"))},
			}),
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions:   &[]*string{jsii.String("s3:PutObject")},
				Resources: &[]*string{outputBucket.ArnForObjects(jsii.String(props.DestPrefix + "*"))},
			}),
		},
	})

	// imgpipe process --input / --output にそのまま渡せる形で出力
	awscdk.NewCfnOutput(stack, jsii.String("InputUrl"), &awscdk.CfnOutputProps{
		Value: awscdk.Fn_Join(jsii.String(""), &[]*string{
			jsii.String("s3://"), inputBucket.BucketName(), jsii.String("/" + props.SourcePrefix),
		}),
	})
	awscdk.NewCfnOutput(stack, jsii.String("OutputUrl"), &awscdk.CfnOutputProps{
		Value: awscdk.Fn_Join(jsii.String(""), &[]*string{
			jsii.String("s3://"), outputBucket.BucketName(), jsii.String("/" + props.DestPrefix),
		}),
	})

	return stack
}

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	NewImgpipeLabStack(app, "ImgpipeLab", &ImgpipeLabStackProps{
		StackProps: awscdk.StackProps{
			Env: env(),
		},
		SourcePrefix: "uploads/",
		DestPrefix:   "processed/",
	})

	app.Synth(nil)
}

// env は環境非依存のスタックにするため nil を返す
func env() *awscdk.Environment {
	return nil
}
