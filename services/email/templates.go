package email

const verificationEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Verify your email</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f9fafb; font-family: Arial, sans-serif;">
    <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%" style="background-color: #f9fafb;">
        <tr>
            <td align="center" style="padding: 40px 20px;">
                <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="600" style="background-color: #ffffff; border-radius: 8px;">
                    <tr>
                        <td style="padding: 32px;">
                            <h2 style="margin: 0 0 16px; color: #111827;">Confirm your email address</h2>
                            <p style="margin: 0 0 24px; color: #4b5563;">
                                Enter this code in the checkout to verify your email.
                                It expires in 10 minutes.
                            </p>
                            <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #111827; margin: 0 0 24px;">%s</p>
                            <p style="margin: 0; color: #9ca3af; font-size: 13px;">
                                If you did not start a Scholarly checkout, you can ignore this email.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Welcome to Scholarly</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f9fafb; font-family: Arial, sans-serif;">
    <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%" style="background-color: #f9fafb;">
        <tr>
            <td align="center" style="padding: 40px 20px;">
                <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="600" style="background-color: #ffffff; border-radius: 8px;">
                    <tr>
                        <td style="padding: 32px;">
                            <h2 style="margin: 0 0 16px; color: #111827;">Welcome, %s!</h2>
                            <p style="margin: 0 0 16px; color: #4b5563;">
                                Your subscription to the <strong>%s</strong> plan is active.
                            </p>
                            <p style="margin: 0 0 24px; color: #4b5563;">
                                Amount charged: <strong>$%s</strong>
                            </p>
                            <p style="margin: 0; color: #9ca3af; font-size: 13px;">
                                You can manage your subscription from the dashboard at any time.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
